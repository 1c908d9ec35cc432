package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/framegrid/internal/ctxlog"
	"github.com/specialistvlad/framegrid/internal/endpoint"
	"github.com/specialistvlad/framegrid/internal/graph"
	"github.com/specialistvlad/framegrid/internal/model"
)

// resolvedLink is a link block with both endpoints bound to instance pads.
type resolvedLink struct {
	decl   *model.Link
	src    *graph.Instance
	srcPad int
	dst    *graph.Instance
	dstPad int
}

func resolveLinks(g *graph.Graph, decls []*model.Link) ([]*resolvedLink, error) {
	links := make([]*resolvedLink, 0, len(decls))
	for _, decl := range decls {
		src, srcPad, err := resolveEndpoint(g, decl.From, true)
		if err != nil {
			return nil, fmt.Errorf("link %s in %s: from: %w", decl, decl.FSInformation, err)
		}
		dst, dstPad, err := resolveEndpoint(g, decl.To, false)
		if err != nil {
			return nil, fmt.Errorf("link %s in %s: to: %w", decl, decl.FSInformation, err)
		}
		links = append(links, &resolvedLink{decl: decl, src: src, srcPad: srcPad, dst: dst, dstPad: dstPad})
	}
	return links, nil
}

func resolveEndpoint(g *graph.Graph, raw string, output bool) (*graph.Instance, int, error) {
	addr, err := endpoint.Parse(raw)
	if err != nil {
		return nil, -1, err
	}
	inst, ok := g.Instance(addr.Instance)
	if !ok {
		return nil, -1, fmt.Errorf("%w: %q", graph.ErrInstanceNotFound, addr.Instance)
	}
	pads := inst.Stage.Inputs
	if output {
		pads = inst.Stage.Outputs
	}
	pad, err := addr.Resolve(pads)
	if err != nil {
		return nil, -1, err
	}
	return inst, pad, nil
}

// inputsConnected reports whether every input pad of inst has a link.
func inputsConnected(inst *graph.Instance) bool {
	for n := 0; n < inst.NumInputs(); n++ {
		if inst.Input(n) == nil {
			return false
		}
	}
	return true
}

// connectInOrder connects each link once its source has all of its inputs
// connected, repeating until nothing is left or no progress is made.
func connectInOrder(ctx context.Context, pending []*resolvedLink) error {
	logger := ctxlog.FromContext(ctx)
	for len(pending) > 0 {
		var next []*resolvedLink
		for _, l := range pending {
			if !inputsConnected(l.src) {
				next = append(next, l)
				continue
			}
			link, err := graph.Connect(l.src, l.srcPad, l.dst, l.dstPad)
			if err != nil {
				return fmt.Errorf("link %s in %s: %w", l.decl, l.decl.FSInformation, err)
			}
			logger.Debug("Connected link", "link", link.String(),
				"width", link.W, "height", link.H, "format", link.Format.String())
		}
		if len(next) == len(pending) {
			blocked := make([]string, len(next))
			for i, l := range next {
				blocked[i] = l.decl.String()
			}
			return fmt.Errorf("%w: waiting on unconnected inputs or a cycle: %s", ErrLinkOrder, strings.Join(blocked, "; "))
		}
		pending = next
	}
	return nil
}
