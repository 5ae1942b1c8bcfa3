package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/certpaths/pkg/catalog"
	"github.com/matzehuels/certpaths/pkg/graph"
	"github.com/matzehuels/certpaths/pkg/layout"
	"github.com/matzehuels/certpaths/pkg/render/nodelink"
)

func ExampleToDOT() {
	certs := []catalog.Cert{
		{ID: "aws-ccp", Vendor: catalog.VendorAWS, Level: catalog.LevelFundamentals,
			Title: "Cloud Practitioner", Exam: "CLF-C02", Roles: []catalog.RoleTrack{catalog.RoleGeneral}},
		{ID: "aws-saa", Vendor: catalog.VendorAWS, Level: catalog.LevelAssociate,
			Title: "Solutions Architect Associate", Exam: "SAA-C03", Roles: []catalog.RoleTrack{catalog.RoleArchitect}},
	}
	links := []catalog.Link{
		{ID: "l1", SourceID: "aws-ccp", TargetID: "aws-saa", Type: catalog.LinkRequired},
	}
	g, _ := graph.Assemble(catalog.VendorAWS, certs, links, layout.DefaultParams())

	// Print the node and edge statements
	for _, l := range strings.Split(nodelink.ToDOT(g, nodelink.Options{}), "\n") {
		if l = strings.TrimSpace(l); strings.HasPrefix(l, `"`) {
			fmt.Println(l)
		}
	}
	// Output:
	// "aws-ccp" [label="Cloud Practitioner (CLF-C02)", pos="180,-88!", fillcolor="#ecfeff"];
	// "aws-saa" [label="Solutions Architect Associate (SAA-C03)", pos="580,-88!", fillcolor="#eff6ff"];
	// "aws-ccp" -> "aws-saa" [id="l1", color="#0f172a", penwidth=2.6, style=solid, arrowhead=normal, fillcolor="#0f172a"];
}

func ExampleToDOT_detailed() {
	certs := []catalog.Cert{
		{ID: "k8s-cka", Vendor: catalog.VendorKubernetes, Level: catalog.LevelAssociate,
			Title: "Certified Kubernetes Administrator", Domain: "Kubernetes",
			Roles: []catalog.RoleTrack{catalog.RoleSysAdmin}},
	}
	g, _ := graph.Assemble(catalog.VendorKubernetes, certs, nil, layout.DefaultParams())

	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
	fmt.Println(strings.Contains(dot, `label="Certified Kubernetes Administrator\nAssociate\nKubernetes\nSysAdmin"`))
	// Output:
	// true
}
