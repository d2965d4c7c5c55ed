package markdown

// RegionID identifies an interactive region within one rendered document.
// The zero value means "not interactive". Identifiers are unique within the
// render call that produced them and meaningless across calls.
type RegionID int

// RegionKind distinguishes what a region resolves to
type RegionKind int

const (
	RegionLink RegionKind = iota
	RegionCodeBlock
)

// Region is the payload a region identifier resolves to.
type Region struct {
	Kind RegionKind

	// URL is set for RegionLink.
	URL string

	// Code and Language are set for RegionCodeBlock.
	Code     string
	Language string
}

// RegionRegistry maps region identifiers to their payloads. A registry is
// created fresh by every Render call and lives exactly as long as the
// StyledDocument it was produced with; hosts must discard it wholesale when
// swapping in a new document.
type RegionRegistry struct {
	regions map[RegionID]Region
	next    RegionID
}

func newRegionRegistry() *RegionRegistry {
	return &RegionRegistry{regions: make(map[RegionID]Region)}
}

func (r *RegionRegistry) registerLink(url string) RegionID {
	r.next++
	r.regions[r.next] = Region{Kind: RegionLink, URL: url}
	return r.next
}

func (r *RegionRegistry) registerCodeBlock(code, language string) RegionID {
	r.next++
	r.regions[r.next] = Region{Kind: RegionCodeBlock, Code: code, Language: language}
	return r.next
}

// Resolve returns the payload for id. The second result is false for ids this
// registry never issued (including the zero RegionID).
func (r *RegionRegistry) Resolve(id RegionID) (Region, bool) {
	region, ok := r.regions[id]
	return region, ok
}

// Len returns the number of registered regions.
func (r *RegionRegistry) Len() int {
	return len(r.regions)
}
