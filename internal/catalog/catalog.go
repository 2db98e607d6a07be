// Package catalog holds the static style catalog offered in the playground's
// Explore view, as opposed to the AI-curated Recommended subset.
package catalog

// Style is one offerable catalog entry.
type Style struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var hairstyles = []Style{
	{Name: "Buzz Cut", Description: "Uniform clipper length all over, low maintenance."},
	{Name: "Crew Cut", Description: "Short back and sides with slightly more length on top."},
	{Name: "Fade", Description: "Tapered sides blending from skin to length on top."},
	{Name: "Undercut", Description: "Disconnected short sides with long top."},
	{Name: "Quiff", Description: "Volume swept up and back from the forehead."},
	{Name: "Pompadour", Description: "High volume top combed up and back, tight sides."},
	{Name: "Slick Back", Description: "Full length combed straight back with product."},
	{Name: "Side Part", Description: "Classic parted style with a defined line."},
	{Name: "Textured Crop", Description: "Choppy fringe with textured, matte finish on top."},
	{Name: "French Crop", Description: "Short horizontal fringe with faded sides."},
	{Name: "Curtains", Description: "Middle part with length framing the face."},
	{Name: "Man Bun", Description: "Long hair tied back at the crown."},
	{Name: "Afro", Description: "Natural volume shaped round or tapered."},
	{Name: "Waves", Description: "Short cropped hair brushed into a wave pattern."},
}

var facialHairStyles = []Style{
	{Name: "Clean Shaven", Description: "No facial hair, fully shaved."},
	{Name: "Stubble", Description: "A few days of even, short growth."},
	{Name: "Goatee", Description: "Hair on the chin only, cheeks shaved."},
	{Name: "Circle Beard", Description: "Connected mustache and rounded chin beard."},
	{Name: "Full Beard", Description: "Complete coverage, shaped at the cheeks and neck."},
	{Name: "Van Dyke", Description: "Disconnected mustache and pointed chin beard."},
	{Name: "Balbo", Description: "Floating chin beard and mustache without sideburns."},
	{Name: "Anchor Beard", Description: "Pointed chin beard tracing the jawline with a mustache."},
	{Name: "Mustache", Description: "Mustache only, cheeks and chin shaved."},
	{Name: "Mutton Chops", Description: "Full sideburns extending to the mouth corners."},
}

// Hairstyles returns the complete hairstyle catalog.
func Hairstyles() []Style {
	return clone(hairstyles)
}

// FacialHairStyles returns the complete facial hair catalog.
func FacialHairStyles() []Style {
	return clone(facialHairStyles)
}

// HasHairstyle reports whether name is in the hairstyle catalog.
func HasHairstyle(name string) bool {
	return contains(hairstyles, name)
}

// HasFacialHair reports whether name is in the facial hair catalog.
func HasFacialHair(name string) bool {
	return contains(facialHairStyles, name)
}

func clone(styles []Style) []Style {
	out := make([]Style, len(styles))
	copy(out, styles)
	return out
}

func contains(styles []Style, name string) bool {
	for _, s := range styles {
		if s.Name == name {
			return true
		}
	}
	return false
}
