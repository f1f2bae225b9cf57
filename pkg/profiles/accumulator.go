package profiles

import (
	"fmt"
	"unicode/utf8"

	"github.com/agentstation/ledgerlink/pkg/authority"
	"github.com/agentstation/ledgerlink/pkg/ledgers"
	"github.com/agentstation/ledgerlink/pkg/normalize"
)

// accumulator collects everything known about one entity key while the
// passes run. It is private to the builder and discarded after Finalize.
type accumulator struct {
	key           string
	supplierID    string
	companyNumber string
	nameKey       string
	entityName    string
	riskLevel     string
	trackedID     string

	roles         stringSet
	routeFamilies stringSet
	notes         stringSet

	records   []*ledgers.MoneyRecord
	recordIDs map[string]bool

	bindings     map[string]*binding
	bindingOrder []string

	links    []SourceLink
	linkKeys map[SourceLink]bool

	signals stringSet
}

// binding is a mutable site binding.
type binding struct {
	site  *ledgers.Site
	roles stringSet
}

func newAccumulator(key string) *accumulator {
	return &accumulator{
		key:           key,
		roles:         newStringSet(),
		routeFamilies: newStringSet(),
		notes:         newStringSet(),
		recordIDs:     make(map[string]bool),
		bindings:      make(map[string]*binding),
		linkKeys:      make(map[SourceLink]bool),
		signals:       newStringSet(),
	}
}

// entityID derives the public identifier: supplier id, then company number,
// then the normalized name. Company and name ids carry distinct prefixes so
// a name like "Company 123" cannot take company 123's id.
func (a *accumulator) entityID() string {
	switch {
	case a.supplierID != "":
		return a.supplierID
	case a.companyNumber != "":
		return "company-" + normalize.Slugify(a.companyNumber)
	default:
		return "name-" + normalize.Slugify(a.nameKey)
	}
}

// offerName keeps the longest name seen, counted in characters. Ties keep
// the first.
func (a *accumulator) offerName(name string) bool {
	if utf8.RuneCountInString(name) > utf8.RuneCountInString(a.entityName) {
		a.entityName = name
		return true
	}
	return false
}

func (a *accumulator) addRole(role string) {
	if role != "" {
		a.roles.add(role)
	}
}

func (a *accumulator) addNote(note string) {
	if note != "" {
		a.notes.add(note)
	}
}

// attach adds a money record once per record id.
func (a *accumulator) attach(r *ledgers.MoneyRecord) bool {
	if r.RecordID != "" {
		if a.recordIDs[r.RecordID] {
			return false
		}
		a.recordIDs[r.RecordID] = true
	}
	a.records = append(a.records, r)
	return true
}

// bind returns the binding for site, creating it on first use.
func (a *accumulator) bind(site *ledgers.Site, role string) *binding {
	b, ok := a.bindings[site.SiteID]
	if !ok {
		b = &binding{site: site, roles: newStringSet()}
		a.bindings[site.SiteID] = b
		a.bindingOrder = append(a.bindingOrder, site.SiteID)
	}
	if role != "" {
		b.roles.add(role)
		a.addRole(role)
	}
	return b
}

// link records a source link, ignoring empty URLs and exact repeats.
func (a *accumulator) link(kind SourceKind, url, title string) {
	if url == "" {
		return
	}
	l := SourceLink{Kind: kind, URL: url, Title: title}
	if a.linkKeys[l] {
		return
	}
	a.linkKeys[l] = true
	a.links = append(a.links, l)
}

// absorb merges other into a. Scalars already set on a are kept.
func (a *accumulator) absorb(other *accumulator) {
	if a.supplierID == "" {
		a.supplierID = other.supplierID
	}
	if a.companyNumber == "" {
		a.companyNumber = other.companyNumber
	}
	if a.nameKey == "" {
		a.nameKey = other.nameKey
	}
	a.offerName(other.entityName)
	a.riskLevel = authority.PickRiskLevel(a.riskLevel, other.riskLevel)

	a.roles.addAll(other.roles)
	a.routeFamilies.addAll(other.routeFamilies)
	a.notes.addAll(other.notes)
	a.signals.addAll(other.signals)

	for _, r := range other.records {
		a.attach(r)
	}
	for _, id := range other.bindingOrder {
		ob := other.bindings[id]
		b := a.bind(ob.site, "")
		b.roles.addAll(ob.roles)
	}
	for _, l := range other.links {
		a.link(l.Kind, l.URL, l.Title)
	}
}

// signalKey identifies an integrity signal across bindings.
func signalKey(siteID string, i int, s *ledgers.IntegritySignal) string {
	if s.SignalID != "" {
		return s.SignalID
	}
	return fmt.Sprintf("%s#%d", siteID, i)
}

// stringSet is an insertion-ordered set.
type stringSet struct {
	seen  map[string]bool
	items []string
}

func newStringSet() stringSet {
	return stringSet{seen: make(map[string]bool)}
}

func (s *stringSet) add(v string) {
	if s.seen[v] {
		return
	}
	s.seen[v] = true
	s.items = append(s.items, v)
}

func (s *stringSet) addAll(other stringSet) {
	for _, v := range other.items {
		s.add(v)
	}
}

func (s *stringSet) len() int {
	return len(s.items)
}

func (s *stringSet) values() []string {
	return append([]string{}, s.items...)
}
