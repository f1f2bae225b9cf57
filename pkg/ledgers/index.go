package ledgers

import "github.com/agentstation/ledgerlink/pkg/normalize"

// SiteIndex looks sites up by id.
type SiteIndex struct {
	byID map[string]*Site
}

// NewSiteIndex indexes the ledger's sites. Sites without an id are left
// out; when ids repeat the first row wins.
func NewSiteIndex(ledger *SiteLedger) *SiteIndex {
	idx := &SiteIndex{byID: make(map[string]*Site)}
	if ledger == nil {
		return idx
	}
	for i := range ledger.Sites {
		site := &ledger.Sites[i]
		if site.SiteID == "" {
			continue
		}
		if _, exists := idx.byID[site.SiteID]; !exists {
			idx.byID[site.SiteID] = site
		}
	}
	return idx
}

// Get returns the site with the given id.
func (x *SiteIndex) Get(siteID string) (*Site, bool) {
	site, ok := x.byID[siteID]
	return site, ok
}

// Len returns the number of indexed sites.
func (x *SiteIndex) Len() int {
	return len(x.byID)
}

// PlaceIndex looks place statistics up by area code, else by area name.
type PlaceIndex struct {
	byCode map[string]*PlaceArea
	byName map[string]*PlaceArea
}

// NewPlaceIndex indexes the place ledger. First row wins on duplicates.
func NewPlaceIndex(ledger *PlaceLedger) *PlaceIndex {
	idx := &PlaceIndex{
		byCode: make(map[string]*PlaceArea),
		byName: make(map[string]*PlaceArea),
	}
	if ledger == nil {
		return idx
	}
	for i := range ledger.Areas {
		area := &ledger.Areas[i]
		if area.AreaCode != "" {
			if _, exists := idx.byCode[area.AreaCode]; !exists {
				idx.byCode[area.AreaCode] = area
			}
		}
		if name := normalize.Name(area.AreaName); name != "" {
			if _, exists := idx.byName[name]; !exists {
				idx.byName[name] = area
			}
		}
	}
	return idx
}

// Lookup finds an area by code first and falls back to the normalized name.
func (x *PlaceIndex) Lookup(areaCode, areaName string) (*PlaceArea, bool) {
	if areaCode != "" {
		if area, ok := x.byCode[areaCode]; ok {
			return area, true
		}
	}
	if name := normalize.Name(areaName); name != "" {
		if area, ok := x.byName[name]; ok {
			return area, true
		}
	}
	return nil, false
}
