/*
Package builder turns a parsed grid into a live filter graph.

Construction runs in phases:

 1. Instance creation: every filter block becomes an instance of the
    registered stage it names, and its arguments block is decoded into the
    instance's private state under the grid's evaluation context.

 2. Link resolution: link endpoints are parsed and resolved to pad indexes
    on the instances they name.

 3. Connection: links are connected in dependency order. A link is only
    connected once every input of its source instance is connected, so the
    source's geometry negotiation sees its upstream geometry. Links whose
    order cannot be resolved mean a cycle or an unconnected input.

 4. Initialization: instances are initialized sources first, which lets
    each Init renegotiate its outputs with final settings.

Any failure closes the partial graph before the error is returned.
*/
package builder
