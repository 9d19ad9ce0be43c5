package category

// Category is one of the closed set of catalog categories.
type Category string

// Known catalog categories. Guardrail inference may only produce values
// from this set; everything else is dropped during normalization.
const (
	Electronics Category = "Electronics"
	Furniture   Category = "Furniture"
	Clothing    Category = "Clothing"
	Footwear    Category = "Footwear"
	Sports      Category = "Sports & Fitness"
	HomeKitchen Category = "Home & Kitchen"
	Beauty      Category = "Beauty & Personal Care"
	Toys        Category = "Toys & Games"
	Office      Category = "Office Supplies"
	Accessories Category = "Accessories"
)

// Known lists every valid category in a stable order.
func Known() []Category {
	return []Category{
		Electronics, Furniture, Clothing, Footwear, Sports,
		HomeKitchen, Beauty, Toys, Office, Accessories,
	}
}

// IsKnown checks membership in the closed category set.
func (c Category) IsKnown() bool {
	for _, k := range Known() {
		if c == k {
			return true
		}
	}
	return false
}

// Constraint is a per-query category guardrail: a hard allow-list and a
// hard deny-list. The zero value means no restriction, which is the
// fail-open state every error path must degrade to.
type Constraint struct {
	allowed  []Category
	excluded []Category
}

// NewConstraint builds a constraint from raw category values, silently
// dropping anything outside the known set and deduplicating.
func NewConstraint(allowed, excluded []string) Constraint {
	return Constraint{
		allowed:  normalize(allowed),
		excluded: normalize(excluded),
	}
}

// Allowed returns the allow-listed categories.
func (c Constraint) Allowed() []Category { return c.allowed }

// Excluded returns the deny-listed categories.
func (c Constraint) Excluded() []Category { return c.excluded }

// IsOpen reports whether the constraint imposes no restriction.
func (c Constraint) IsOpen() bool {
	return len(c.allowed) == 0 && len(c.excluded) == 0
}

func normalize(raw []string) []Category {
	seen := make(map[Category]bool, len(raw))
	var out []Category
	for _, r := range raw {
		c := Category(r)
		if !c.IsKnown() || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
