package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// "5-Pack", "5 pack", "5pack" anywhere in the product name.
	packSizeRe = regexp.MustCompile(`(?i)(\d+)[- ]?pack`)

	// First digit run in free-form unit_per_pack text.
	digitsRe = regexp.MustCompile(`\d+`)
)

// singleUnitPhrases are unit_per_pack values that explicitly mean one unit.
var singleUnitPhrases = map[string]bool{
	"single disposable": true,
	"single":            true,
	"one":               true,
}

// ExtractPackSize derives the pack size from the product name and the
// unit_per_pack text. Explicit single-unit phrases win, then an "N-pack"
// match in the name, then the first digit run in unit_per_pack, then 1.
func ExtractPackSize(name, unitPerPack string) int {
	if singleUnitPhrases[strings.ToLower(strings.TrimSpace(unitPerPack))] {
		return 1
	}

	if m := packSizeRe.FindStringSubmatch(name); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}

	if unitPerPack != "" {
		if digits := digitsRe.FindString(unitPerPack); digits != "" {
			if n, err := strconv.Atoi(digits); err == nil {
				return n
			}
		}
	}

	return 1
}

// Meaningful reports whether an attribute value distinguishes a product:
// non-empty and not a literal zero after trimming.
func Meaningful(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	return v != "" && v != "0" && v != "0.0"
}

// CanonicalName derives the identity key grouping packaging variants of the
// same underlying product. It returns "" when none of the differentiating
// attributes (volume, nicotine level, flavor, resistance) is meaningful;
// such products are never grouped. The key is a lowercased
// category_brand_base prefix (base alone when either part is empty)
// followed by the meaningful attributes joined with " | " in fixed order.
func CanonicalName(category, brand, base string, volume, nicotine, flavor, resistance string) string {
	attrs := make([]string, 0, 4)
	for _, attr := range []string{volume, nicotine, flavor, resistance} {
		if Meaningful(attr) {
			attrs = append(attrs, strings.ToLower(strings.TrimSpace(attr)))
		}
	}
	if len(attrs) == 0 {
		return ""
	}

	name := strings.ToLower(strings.TrimSpace(base))
	category = strings.ToLower(strings.TrimSpace(category))
	brand = strings.ToLower(strings.TrimSpace(brand))
	if category != "" && brand != "" {
		name = category + "_" + brand + "_" + name
	}

	return name + " | " + strings.Join(attrs, " | ")
}
