// Package profiles reconciles the site, money and place ledgers into one
// EntityProfile per organisation.
//
// A Builder runs five passes in a fixed order over a map of entity key to
// accumulator. Later passes only enrich: scalar identity fields keep the
// first value written, while roles, route families, notes, source links and
// site bindings grow. Finalize then turns every accumulator into an immutable
// profile and ranks the collection.
package profiles

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/ledgerlink/pkg/authority"
	"github.com/agentstation/ledgerlink/pkg/constants"
	"github.com/agentstation/ledgerlink/pkg/errors"
	"github.com/agentstation/ledgerlink/pkg/ledgers"
	"github.com/agentstation/ledgerlink/pkg/logging"
	"github.com/agentstation/ledgerlink/pkg/normalize"
	"github.com/agentstation/ledgerlink/pkg/provenance"
)

// Builder pass names, in execution order.
const (
	PassSupplier     = "supplier"
	PassMoney        = "money"
	PassSiteLink     = "site_link"
	PassSupplierSite = "supplier_site"
	PassSignals      = "signals"
	PassFinalize     = "finalize"
)

type builderState int

const (
	stateNew builderState = iota
	stateRun
	stateFinalized
)

// Builder accumulates evidence for one run. A Builder is single use and not
// safe for concurrent use.
type Builder struct {
	site   *ledgers.SiteLedger
	money  *ledgers.MoneyLedger
	sites  *ledgers.SiteIndex
	places *ledgers.PlaceIndex

	accs      map[string]*accumulator
	order     []string
	aliases   map[string]string // normalized name -> company key
	suppliers map[string]string // supplier id -> key

	tracker provenance.Tracker
	logger  *zerolog.Logger
	stats   Stats
	state   builderState
	started time.Time
}

// origin identifies the ledger row behind a write.
type origin struct {
	pass   string
	ledger string
	row    string
}

// NewBuilder validates the three ledgers and prepares a Builder.
func NewBuilder(site *ledgers.SiteLedger, money *ledgers.MoneyLedger, place *ledgers.PlaceLedger, opts ...Option) (*Builder, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	switch {
	case site == nil:
		return nil, errors.NewLedgerError(constants.LedgerSite, "", "document is missing", nil)
	case money == nil:
		return nil, errors.NewLedgerError(constants.LedgerMoney, "", "document is missing", nil)
	case place == nil:
		return nil, errors.NewLedgerError(constants.LedgerPlace, "", "document is missing", nil)
	}

	return &Builder{
		site:      site,
		money:     money,
		sites:     ledgers.NewSiteIndex(site),
		places:    ledgers.NewPlaceIndex(place),
		accs:      make(map[string]*accumulator),
		aliases:   make(map[string]string),
		suppliers: make(map[string]string),
		tracker:   provenance.NewTracker(options.tracking),
		logger:    options.logger,
	}, nil
}

// Run executes the five passes in order. It may be called once.
func (b *Builder) Run(ctx context.Context) error {
	if b.state != stateNew {
		return &errors.ValidationError{Field: "builder", Message: "passes have already run"}
	}
	if b.logger != nil {
		ctx = logging.WithLogger(ctx, b.logger)
	}
	b.logger = logging.FromContext(ctx)
	b.started = time.Now()

	passes := []struct {
		name   string
		ledger string
		run    func(*zerolog.Logger) (rows, skipped int)
	}{
		{PassSupplier, constants.LedgerMoney, b.supplierPass},
		{PassMoney, constants.LedgerMoney, b.moneyPass},
		{PassSiteLink, constants.LedgerSite, b.siteLinkPass},
		{PassSupplierSite, constants.LedgerMoney, b.supplierSitePass},
		{PassSignals, constants.LedgerSite, b.signalPass},
	}
	for _, pass := range passes {
		logger := logging.FromContext(logging.WithLedger(logging.WithPass(ctx, pass.name), pass.ledger))
		rows, skipped := pass.run(logger)
		logger.Debug().
			Int("rows", rows).
			Int("skipped", skipped).
			Int("accumulators", len(b.accs)).
			Msg("Completed builder pass")
	}

	b.state = stateRun
	return nil
}

// supplierPass seeds identity, role, risk and route families from the money
// ledger's supplier profiles.
func (b *Builder) supplierPass(logger *zerolog.Logger) (int, int) {
	skipped := 0
	for i := range b.money.SupplierProfiles {
		sp := &b.money.SupplierProfiles[i]
		o := origin{PassSupplier, constants.LedgerMoney, rowID(sp.SupplierID, "supplierProfiles", i)}
		b.stats.SupplierProfiles++

		acc := b.resolve(sp.EntityName, sp.CompanyNumber, o)
		if acc == nil {
			skipped++
			b.stats.SupplierProfilesSkipped++
			skipRow(logger, o)
			continue
		}

		if acc.supplierID == "" && sp.SupplierID != "" {
			acc.supplierID = sp.SupplierID
		}
		b.noteEntityID(acc, o)
		acc.addRole(sp.EntityRole)
		b.offerRisk(acc, sp.RiskLevel, o)
		for _, rf := range sp.RouteFamilies {
			if rf != "" {
				acc.routeFamilies.add(rf)
			}
		}
		for _, url := range sp.SourceURLs {
			acc.link(SourceSupplierProfile, url, sp.EntityName)
		}
		acc.addNote(sp.Notes)

		if sp.SupplierID != "" {
			if _, seen := b.suppliers[sp.SupplierID]; !seen {
				b.suppliers[sp.SupplierID] = acc.key
			}
		}
	}
	return len(b.money.SupplierProfiles), skipped
}

// moneyPass attaches money records to the supplier they name.
func (b *Builder) moneyPass(logger *zerolog.Logger) (int, int) {
	skipped := 0
	for i := range b.money.Records {
		r := &b.money.Records[i]
		o := origin{PassMoney, constants.LedgerMoney, rowID(r.RecordID, "records", i)}
		b.stats.MoneyRecords++

		var acc *accumulator
		if key, ok := b.suppliers[r.SupplierID]; ok && r.SupplierID != "" {
			acc = b.accs[key]
		} else {
			acc = b.resolve(r.SupplierName, r.SupplierCompanyNumber, o)
		}
		if acc == nil {
			skipped++
			b.stats.MoneyRecordsSkipped++
			skipRow(logger, o)
			continue
		}

		acc.attach(r)
		acc.addRole(r.SupplierRole)
		if r.RouteFamily != "" {
			acc.routeFamilies.add(r.RouteFamily)
		}
		if r.SourceTitle != "" && r.SourceURL != "" {
			acc.link(SourceMoneyRow, r.SourceURL, r.SourceTitle)
		}
	}
	return len(b.money.Records), skipped
}

// siteLinkPass binds entities named by site-level links and prime providers.
func (b *Builder) siteLinkPass(logger *zerolog.Logger) (int, int) {
	rows, skipped := 0, 0
	for i := range b.site.Sites {
		s := &b.site.Sites[i]
		b.stats.Sites++
		site, ok := b.sites.Get(s.SiteID)
		if !ok {
			skipped++
			skipRow(logger, origin{PassSiteLink, constants.LedgerSite, rowID("", "sites", i)})
			continue
		}

		for j := range s.EntityLinks {
			l := &s.EntityLinks[j]
			o := origin{PassSiteLink, constants.LedgerSite, fmt.Sprintf("%s.entityLinks.%d", s.SiteID, j)}
			rows++
			b.stats.EntityLinks++

			acc := b.resolve(l.EntityName, l.CompanyNumber, o)
			if acc == nil {
				skipped++
				b.stats.EntityLinksSkipped++
				skipRow(logger, o)
				continue
			}
			acc.bind(site, l.LinkRole)
			acc.addNote(l.Notes)
			for k, url := range l.SourceURLs {
				title := s.SiteName
				if k < len(l.SourceTitles) && l.SourceTitles[k] != "" {
					title = l.SourceTitles[k]
				}
				acc.link(SourceHotelLink, url, title)
			}
			acc.link(SourceHotelSite, s.SourceURL, siteSourceTitle(s))
		}

		if pp := s.PrimeProvider; pp != nil {
			o := origin{PassSiteLink, constants.LedgerSite, s.SiteID + ".primeProvider"}
			rows++
			acc := b.resolve(pp.Provider, "", o)
			if acc == nil {
				skipped++
				skipRow(logger, o)
				continue
			}
			acc.bind(site, authority.RolePrimeProvider)
			acc.link(SourcePrimeProvider, pp.SourceURL, pp.SourceTitle)
		}
	}
	return rows, skipped
}

// supplierSitePass binds sites declared only on the supplier side.
func (b *Builder) supplierSitePass(logger *zerolog.Logger) (int, int) {
	rows, skipped := 0, 0
	for i := range b.money.SupplierProfiles {
		sp := &b.money.SupplierProfiles[i]
		if len(sp.SiteIDs) == 0 {
			continue
		}
		o := origin{PassSupplierSite, constants.LedgerMoney, rowID(sp.SupplierID, "supplierProfiles", i)}

		var acc *accumulator
		if key, ok := b.suppliers[sp.SupplierID]; ok && sp.SupplierID != "" {
			acc = b.accs[key]
		} else {
			acc = b.resolve(sp.EntityName, sp.CompanyNumber, o)
		}
		if acc == nil {
			skipped += len(sp.SiteIDs)
			continue
		}

		for _, siteID := range sp.SiteIDs {
			rows++
			site, ok := b.sites.Get(siteID)
			if !ok {
				skipped++
				b.stats.BindingsDropped++
				logger.Debug().
					Str("ledger", o.ledger).
					Str("row", o.row).
					Str("site_id", siteID).
					Msg("Dropped binding to unknown site")
				continue
			}
			acc.bind(site, sp.EntityRole)
		}
	}
	return rows, skipped
}

// signalPass copies each bound site's integrity signals onto the entity.
func (b *Builder) signalPass(_ *zerolog.Logger) (int, int) {
	rows := 0
	for _, key := range b.order {
		acc := b.accs[key]
		for _, siteID := range acc.bindingOrder {
			site := acc.bindings[siteID].site
			for i := range site.IntegritySignals {
				rows++
				acc.signals.add(signalKey(site.SiteID, i, &site.IntegritySignals[i]))
			}
		}
	}
	return rows, 0
}

// resolve finds or creates the accumulator for a name and company number.
// It returns nil when neither yields a key.
func (b *Builder) resolve(name, companyNumber string, o origin) *accumulator {
	nameKey := normalize.Name(name)
	cn := strings.TrimSpace(companyNumber)
	key := normalize.EntityKey(name, companyNumber)
	if key == "" {
		return nil
	}

	var acc *accumulator
	if cn != "" {
		acc = b.resolveCompany(key, cn, nameKey, o)
	} else {
		acc = b.resolveName(nameKey)
	}

	if acc.nameKey == "" {
		acc.nameKey = nameKey
	}
	if name = strings.TrimSpace(name); acc.offerName(name) {
		b.track(acc, "entityName", name, true, o, "")
	}
	b.noteEntityID(acc, o)
	return acc
}

func (b *Builder) resolveName(nameKey string) *accumulator {
	if target, ok := b.aliases[nameKey]; ok {
		return b.accs[target]
	}
	if acc, ok := b.accs[nameKey]; ok {
		return acc
	}
	return b.create(nameKey)
}

func (b *Builder) resolveCompany(key, cn, nameKey string, o origin) *accumulator {
	prior, named := b.accs[nameKey]
	named = named && nameKey != "" && prior.companyNumber == ""

	acc, ok := b.accs[key]
	switch {
	case ok && named && prior != acc:
		b.merge(acc, prior)
	case !ok && named:
		b.rekey(prior, key)
		acc = prior
	case !ok:
		acc = b.create(key)
	}
	if acc.companyNumber == "" {
		acc.companyNumber = cn
		b.track(acc, "companyNumber", cn, true, o, "")
	}
	b.alias(nameKey, acc, cn, o)
	return acc
}

// alias registers nameKey as resolving to acc. The first company number to
// claim a name keeps it; later claims are recorded as conflicts.
func (b *Builder) alias(nameKey string, acc *accumulator, cn string, o origin) {
	if nameKey == "" {
		return
	}
	target, ok := b.aliases[nameKey]
	if !ok {
		b.aliases[nameKey] = acc.key
		return
	}
	if target == acc.key {
		return
	}
	b.stats.Conflicts++
	owner := b.accs[target]
	b.track(owner, "companyNumber", cn, false, o,
		fmt.Sprintf("name %q already resolves to company %s", nameKey, owner.companyNumber))
	b.logger.Debug().
		Str("ledger", o.ledger).
		Str("row", o.row).
		Str("name", nameKey).
		Str("kept", owner.companyNumber).
		Str("rejected", cn).
		Msg("Company number conflict on shared name")
}

func (b *Builder) create(key string) *accumulator {
	acc := newAccumulator(key)
	b.accs[key] = acc
	b.order = append(b.order, key)
	return acc
}

// rekey moves a name-keyed accumulator to a company key.
func (b *Builder) rekey(acc *accumulator, key string) {
	old := acc.key
	delete(b.accs, old)
	acc.key = key
	b.accs[key] = acc
	b.order[slices.Index(b.order, old)] = key
	b.repoint(old, key)
	b.tracker.Rekey(old, key)
	b.stats.Rekeyed++
}

// merge folds a name-keyed accumulator into a company-keyed one.
func (b *Builder) merge(into, from *accumulator) {
	into.absorb(from)
	delete(b.accs, from.key)
	b.order = slices.DeleteFunc(b.order, func(k string) bool { return k == from.key })
	b.repoint(from.key, into.key)
	b.tracker.Rekey(from.key, into.key)
	b.stats.Merged++
}

func (b *Builder) repoint(old, key string) {
	for id, k := range b.suppliers {
		if k == old {
			b.suppliers[id] = key
		}
	}
	for name, k := range b.aliases {
		if k == old {
			b.aliases[name] = key
		}
	}
}

func (b *Builder) offerRisk(acc *accumulator, level string, o origin) {
	if level == "" {
		return
	}
	next := authority.PickRiskLevel(acc.riskLevel, level)
	if next != acc.riskLevel {
		acc.riskLevel = next
		b.track(acc, "riskLevel", level, true, o, "")
		return
	}
	if !strings.EqualFold(level, acc.riskLevel) {
		b.track(acc, "riskLevel", level, false, o, "lower priority than "+acc.riskLevel)
	}
}

func (b *Builder) noteEntityID(acc *accumulator, o origin) {
	if id := acc.entityID(); id != acc.trackedID {
		acc.trackedID = id
		b.track(acc, "entityId", id, true, o, "")
	}
}

func (b *Builder) track(acc *accumulator, field string, value any, accepted bool, o origin, reason string) {
	b.tracker.Track(acc.key, field, provenance.Provenance{
		Pass:     o.pass,
		Ledger:   o.ledger,
		Row:      o.row,
		Value:    value,
		Accepted: accepted,
		Reason:   reason,
	})
}

func skipRow(logger *zerolog.Logger, o origin) {
	logger.Debug().
		Str("ledger", o.ledger).
		Str("row", o.row).
		Msg("Skipped row without identity")
}

// rowID prefers a row's own identifier over its position.
func rowID(id, collection string, index int) string {
	if id != "" {
		return id
	}
	return fmt.Sprintf("%s.%d", collection, index)
}

func siteSourceTitle(s *ledgers.Site) string {
	if s.SourceTitle != "" {
		return s.SourceTitle
	}
	return s.SiteName
}
