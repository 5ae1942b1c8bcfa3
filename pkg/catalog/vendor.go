package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// ForVendor returns the vendor's certifications in input order together
// with the links whose source and target both belong to that vendor.
func (c *Catalog) ForVendor(v Vendor) ([]Cert, []Link) {
	var certs []Cert
	ids := make(map[string]struct{})
	for _, cert := range c.Certs {
		if cert.Vendor == v {
			certs = append(certs, cert)
			ids[cert.ID] = struct{}{}
		}
	}

	var links []Link
	for _, l := range c.Links {
		_, src := ids[l.SourceID]
		_, dst := ids[l.TargetID]
		if src && dst {
			links = append(links, l)
		}
	}
	return certs, links
}

// Cert looks up a certification by id.
func (c *Catalog) Cert(id string) (Cert, bool) {
	for _, cert := range c.Certs {
		if cert.ID == id {
			return cert, true
		}
	}
	return Cert{}, false
}

// VendorCounts returns the number of certifications per vendor.
func (c *Catalog) VendorCounts() map[Vendor]int {
	counts := make(map[Vendor]int, len(Vendors))
	for _, cert := range c.Certs {
		counts[cert.Vendor]++
	}
	return counts
}

// Hash returns a hex SHA-256 digest of the catalog's canonical JSON form.
// Two catalogs with the same content always hash equal.
func (c *Catalog) Hash() string {
	data, _ := json.Marshal(c)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
