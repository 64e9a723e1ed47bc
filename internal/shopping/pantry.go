package shopping

import "strings"

// matchPantry returns the first pantry entry covering the item key. The
// check is a lower-cased substring containment in either direction,
// deliberately permissive: dropping an item the household owns costs
// less than a spurious entry on a list a human reviews anyway.
func matchPantry(itemKey string, pantryNames []string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(itemKey))
	if key == "" {
		return "", false
	}
	for _, name := range pantryNames {
		pantry := strings.ToLower(strings.TrimSpace(name))
		if pantry == "" {
			continue
		}
		if strings.Contains(key, pantry) || strings.Contains(pantry, key) {
			return name, true
		}
	}
	return "", false
}

func inPantry(itemKey string, pantryNames []string) bool {
	_, ok := matchPantry(itemKey, pantryNames)
	return ok
}
