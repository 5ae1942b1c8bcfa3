package layout

import (
	"errors"
	"testing"

	"github.com/matzehuels/certpaths/pkg/catalog"
)

func mkCert(id string, v catalog.Vendor, l catalog.Level) catalog.Cert {
	return catalog.Cert{ID: id, Vendor: v, Level: l, Title: id, Roles: []catalog.RoleTrack{catalog.RoleGeneral}}
}

func TestCompute(t *testing.T) {
	certs := []catalog.Cert{
		mkCert("a1", catalog.VendorAWS, catalog.LevelFundamentals),
		mkCert("a2", catalog.VendorAWS, catalog.LevelAssociate),
		mkCert("a3", catalog.VendorAWS, catalog.LevelAssociate),
		mkCert("a4", catalog.VendorAWS, catalog.LevelSpecialty),
		mkCert("a5", catalog.VendorAWS, catalog.LevelProfessional),
	}

	got, err := Compute(certs, DefaultParams())
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	want := []Position{
		{X: 40, Y: 40},
		{X: 440, Y: 40},
		{X: 440, Y: 200},
		{X: 1240, Y: 40},
		{X: 840, Y: 40},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s: got %+v, want %+v", certs[i].ID, got[i], want[i])
		}
	}
}

func TestComputeSlotsPerVendor(t *testing.T) {
	// Slots are counted per (vendor, level), so a second vendor restarts at row 0.
	certs := []catalog.Cert{
		mkCert("aws", catalog.VendorAWS, catalog.LevelAssociate),
		mkCert("gcp", catalog.VendorGCP, catalog.LevelAssociate),
	}
	got, err := Compute(certs, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Y != 40 || got[1].Y != 40 {
		t.Errorf("Y = %v, %v; want 40, 40", got[0].Y, got[1].Y)
	}
}

func TestComputeMonotonicSlots(t *testing.T) {
	var certs []catalog.Cert
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		certs = append(certs, mkCert(id, catalog.VendorAzure, catalog.LevelAssociate))
	}
	p := Params{XGap: 100, YGap: 50, XOffset: 0, YOffset: 10}
	got, err := Compute(certs, p)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Y-got[i-1].Y != p.YGap {
			t.Errorf("row %d: Y step = %v, want %v", i, got[i].Y-got[i-1].Y, p.YGap)
		}
		if got[i].X != got[0].X {
			t.Errorf("row %d: X = %v, want %v", i, got[i].X, got[0].X)
		}
	}
}

func TestComputeDeterministic(t *testing.T) {
	cat, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	first, err := Compute(cat.Certs, DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	for range 3 {
		again, _ := Compute(cat.Certs, DefaultParams())
		for i := range first {
			if first[i] != again[i] {
				t.Fatalf("position %d changed between runs", i)
			}
		}
	}
}

func TestComputeEmpty(t *testing.T) {
	got, err := Compute(nil, DefaultParams())
	if err != nil || len(got) != 0 {
		t.Errorf("Compute(nil) = %v, %v; want empty", got, err)
	}
}

func TestComputeUnrankedLevel(t *testing.T) {
	certs := []catalog.Cert{mkCert("x", catalog.VendorAWS, "Expert")}
	_, err := Compute(certs, DefaultParams())
	if !errors.Is(err, ErrUnrankedLevel) {
		t.Errorf("Compute() error = %v, want ErrUnrankedLevel", err)
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		p       Params
		wantErr bool
	}{
		{"defaults", DefaultParams(), false},
		{"zero offsets", Params{XGap: 1, YGap: 1}, false},
		{"zero xgap", Params{YGap: 1}, true},
		{"negative ygap", Params{XGap: 1, YGap: -1}, true},
		{"negative offset", Params{XGap: 1, YGap: 1, XOffset: -5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.p.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	p := DefaultParams()
	w, h := Bounds([]Position{{X: 40, Y: 40}, {X: 440, Y: 200}}, p)
	if w != 440+200+40 || h != 200+80+40 {
		t.Errorf("Bounds = %v x %v", w, h)
	}
}
