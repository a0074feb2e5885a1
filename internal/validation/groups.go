// =============================================================================
// QRMS Invoice Export - Conditional Requirement Groups
// =============================================================================
//
// A line item must satisfy at least one of five cost-object groups to be
// postable. The groups are not mutually exclusive inputs: a line may carry
// fields from several groups, and validity only requires that one group's
// full requirement is met.
//
// The rebilling group is special in two ways:
//   - It is only a *requirement* when the line's tax code is a rebilling
//     code (S3/S4); with any other tax code, its absence does not by
//     itself block the line.
//   - When rebilling is required, a complete COPA set no longer satisfies
//     the line on its own; the rebilling pair must be present.
//
// =============================================================================

package validation

import (
	"github.com/ginjaninja78/QRMS-invoice-export/internal/batch"
	"github.com/ginjaninja78/QRMS-invoice-export/internal/catalog"
)

// GroupKind identifies one of the five conditional requirement groups.
type GroupKind int

const (
	GroupCOPA GroupKind = iota
	GroupRebilling
	GroupProfitCenter
	GroupCostCenter
	GroupWBSElement
)

// Group describes one conditional requirement group: its identity and the
// predicate that decides whether a line satisfies it.
type Group struct {
	Kind GroupKind

	// Name is the label used in messages and logs.
	Name string

	// Satisfied reports whether the line meets this group's full
	// requirement. Partial data in a group never counts.
	Satisfied func(l *batch.LineItem) bool
}

// rebillingRequired reports whether the line's tax code makes the
// rebilling pair a blocking requirement.
func rebillingRequired(l *batch.LineItem) bool {
	return catalog.IsRebillingTaxCode(l.TaxCode)
}

// Groups enumerates the five conditional requirement groups in the order
// they are presented to users.
var Groups = []Group{
	{
		Kind: GroupCOPA,
		Name: "COPA",
		// COPA only satisfies the line when rebilling is not separately
		// required; an S3/S4 line must carry the rebilling pair.
		Satisfied: func(l *batch.LineItem) bool {
			return l.COPAComplete() && !rebillingRequired(l)
		},
	},
	{
		Kind: GroupRebilling,
		Name: "Rebilling",
		Satisfied: func(l *batch.LineItem) bool {
			return rebillingRequired(l) && l.RebillingComplete()
		},
	},
	{
		Kind: GroupProfitCenter,
		Name: "Profit Center",
		Satisfied: func(l *batch.LineItem) bool {
			return l.ProfitCenter != ""
		},
	},
	{
		Kind: GroupCostCenter,
		Name: "Cost Center",
		Satisfied: func(l *batch.LineItem) bool {
			return l.CostCenter != ""
		},
	},
	{
		Kind: GroupWBSElement,
		Name: "WBS Element",
		Satisfied: func(l *batch.LineItem) bool {
			return l.WBSElement != ""
		},
	},
}

// anyGroupSatisfied reports whether at least one conditional group's full
// requirement is met for the line.
func anyGroupSatisfied(l *batch.LineItem) bool {
	for _, g := range Groups {
		if g.Satisfied(l) {
			return true
		}
	}
	return false
}
