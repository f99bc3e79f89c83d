package modules

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// checkDependencyLoops returns an error naming the modules of every
// dependency loop. Dependencies must already be known to exist.
func checkDependencyLoops() error {
	g := simple.NewDirectedGraph()
	ids := make(map[string]int64, len(modules))
	names := make(map[int64]string, len(modules))
	for name := range modules {
		n := g.NewNode()
		g.AddNode(n)
		ids[name] = n.ID()
		names[n.ID()] = name
	}

	for name, m := range modules {
		for _, depName := range m.depNames {
			if depName == name {
				return fmt.Errorf("modules: module %s depends on itself", name)
			}
			g.SetEdge(g.NewEdge(g.Node(ids[depName]), g.Node(ids[name])))
		}
	}

	_, err := topo.Sort(g)
	if err == nil {
		return nil
	}

	var loops topo.Unorderable
	if !errors.As(err, &loops) {
		return fmt.Errorf("modules: failed to order modules: %w", err)
	}
	descriptions := make([]string, 0, len(loops))
	for _, loop := range loops {
		loopNames := make([]string, 0, len(loop))
		for _, n := range loop {
			loopNames = append(loopNames, names[n.ID()])
		}
		sort.Strings(loopNames)
		descriptions = append(descriptions, strings.Join(loopNames, ", "))
	}
	sort.Strings(descriptions)
	return fmt.Errorf("modules: dependency loop detected between: %s", strings.Join(descriptions, "; "))
}
