package filter_test

import (
	"fmt"

	"github.com/matzehuels/certpaths/pkg/catalog"
	"github.com/matzehuels/certpaths/pkg/filter"
	"github.com/matzehuels/certpaths/pkg/graph"
	"github.com/matzehuels/certpaths/pkg/layout"
)

func ExampleResolve() {
	certs := []catalog.Cert{
		{ID: "a1", Vendor: catalog.VendorAWS, Level: catalog.LevelFundamentals, Title: "Cloud Practitioner", Roles: []catalog.RoleTrack{catalog.RoleGeneral}},
		{ID: "a2", Vendor: catalog.VendorAWS, Level: catalog.LevelAssociate, Title: "Solutions Architect", Roles: []catalog.RoleTrack{catalog.RoleArchitect}},
		{ID: "a3", Vendor: catalog.VendorAWS, Level: catalog.LevelAssociate, Title: "Developer", Roles: []catalog.RoleTrack{catalog.RoleDevOps}},
	}
	links := []catalog.Link{
		{ID: "l1", SourceID: "a1", TargetID: "a2", Type: catalog.LinkRecommended},
	}
	g, _ := graph.Assemble(catalog.VendorAWS, certs, links, layout.DefaultParams())

	s := filter.DefaultState(catalog.VendorAWS)
	s.Level = "Associate"
	visible := filter.Resolve(g, s)

	for _, n := range visible.Nodes {
		fmt.Println(n.ID)
	}
	fmt.Println("edges:", visible.EdgeCount())
	// Output:
	// a2
	// a3
	// edges: 0
}
