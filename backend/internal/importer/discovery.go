package importer

import "sort"

// PlaceholderCategory marks a discovered food that still needs a human to
// classify it
const PlaceholderCategory = "classify_me"

// FoodDiscovery is the set of distinct favourite foods named in a people file
type FoodDiscovery struct {
	People int
	// Foods holds normalized names in ascending order
	Foods []string
	// EmptyNames counts favourite food entries that normalized to ""
	EmptyNames int
}

// DiscoverFoods collects the normalized favourite foods of every person.
// Records that fail validation abort the scan.
func DiscoverFoods(people *Records[PersonRecord]) (*FoodDiscovery, error) {
	seen := make(map[string]struct{})
	d := &FoodDiscovery{People: people.Len()}

	err := people.Each(func(_ int, rec PersonRecord) error {
		for _, raw := range rec.FavouriteFood {
			name := NormalizeFoodName(raw)
			if name == "" {
				d.EmptyNames++
				continue
			}
			seen[name] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	d.Foods = make([]string, 0, len(seen))
	for name := range seen {
		d.Foods = append(d.Foods, name)
	}
	sort.Strings(d.Foods)
	return d, nil
}

// Vocabulary returns a category document with every food set to
// PlaceholderCategory
func (d *FoodDiscovery) Vocabulary() map[string]string {
	vocab := make(map[string]string, len(d.Foods))
	for _, name := range d.Foods {
		vocab[name] = PlaceholderCategory
	}
	return vocab
}
