// Package split divides a transaction total among participants under one
// of four policies while keeping the shares summing exactly to the total.
// Everything is pure integer arithmetic on minor units; the same inputs
// always produce the same allocation.
package split

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dsilveira/tally/internal/money"
)

// Policy selects how a total is divided among participants.
type Policy string

const (
	PolicyEqual      Policy = "equal"
	PolicyAmount     Policy = "amount"
	PolicyPercentage Policy = "percentage"
	PolicyShares     Policy = "shares"
)

var (
	ErrInvalidSplit = errors.New("invalid split")
	ErrZeroShares   = errors.New("total share count is zero")
)

// ParticipantInput carries one participant's identifier plus the value the
// active policy reads. Fields for other policies are ignored. The payer may
// appear in the list to override their policy defaults; when absent they
// are still part of the allocation.
type ParticipantInput struct {
	ID uuid.UUID

	// Amount is this participant's fixed share under PolicyAmount.
	// Nil defaults to zero. The payer's amount is always inferred.
	Amount *money.Money

	// PercentBP is this participant's percentage in basis points
	// (one hundredth of a percent, so 6000 = 60%) under PolicyPercentage.
	// Nil defaults to zero.
	PercentBP *int64

	// Shares is this participant's share count under PolicyShares.
	// Nil defaults to zero for invitees and one for the payer.
	Shares *int64
}

// Share is one participant's allocated amount.
type Share struct {
	Participant uuid.UUID
	Amount      money.Money
}

// Allocation is the result of a split: the payer's share first, then the
// remaining participants in input order. Shares always sum exactly to Total.
type Allocation struct {
	Total  money.Money
	Policy Policy
	Shares []Share
}

// Amount returns the share allocated to the given participant, or zero if
// the participant is not part of the allocation.
func (a *Allocation) Amount(id uuid.UUID) money.Money {
	for _, s := range a.Shares {
		if s.Participant == id {
			return s.Amount
		}
	}

	return 0
}

// Allocate divides total among the payer and participants under the given
// policy. The payer is always present in the result even when no
// participant entry mentions them.
func Allocate(total money.Money, policy Policy, payer uuid.UUID, participants []ParticipantInput) (*Allocation, error) {
	if total <= 0 {
		return nil, fmt.Errorf("%w: total must be positive, got %s", money.ErrInvalidAmount, total)
	}

	payerInput, others, err := splitOutPayer(payer, participants)
	if err != nil {
		return nil, err
	}

	var shares []Share

	switch policy {
	case PolicyEqual:
		shares = allocateEqual(total, payer, others)
	case PolicyAmount:
		shares, err = allocateAmount(total, payer, payerInput, others)
	case PolicyPercentage:
		shares, err = allocatePercentage(total, payer, payerInput, others)
	case PolicyShares:
		shares, err = allocateShares(total, payer, payerInput, others)
	default:
		return nil, fmt.Errorf("%w: unknown policy %q", ErrInvalidSplit, policy)
	}

	if err != nil {
		return nil, err
	}

	return &Allocation{Total: total, Policy: policy, Shares: shares}, nil
}

// splitOutPayer rejects duplicate identifiers and, if the payer is listed,
// pulls their entry out so every policy sees the payer exactly once.
func splitOutPayer(payer uuid.UUID, participants []ParticipantInput) (*ParticipantInput, []ParticipantInput, error) {
	seen := make(map[uuid.UUID]struct{}, len(participants))

	var payerInput *ParticipantInput

	others := make([]ParticipantInput, 0, len(participants))

	for _, p := range participants {
		if _, dup := seen[p.ID]; dup {
			return nil, nil, fmt.Errorf("%w: duplicate participant %s", ErrInvalidSplit, p.ID)
		}

		seen[p.ID] = struct{}{}

		if p.ID == payer {
			entry := p
			payerInput = &entry

			continue
		}

		others = append(others, p)
	}

	return payerInput, others, nil
}

// allocateEqual gives everyone floor(total/n) and hands the remainder out
// one minor unit at a time, payer first then input order. The remainder is
// strictly less than n, so a single pass suffices.
func allocateEqual(total money.Money, payer uuid.UUID, others []ParticipantInput) []Share {
	n := int64(len(others)) + 1
	base := int64(total) / n
	remainder := int64(total) - base*n

	shares := make([]Share, 0, n)
	shares = append(shares, Share{Participant: payer, Amount: money.Money(base)})

	for _, p := range others {
		shares = append(shares, Share{Participant: p.ID, Amount: money.Money(base)})
	}

	for i := range shares {
		if remainder == 0 {
			break
		}

		shares[i].Amount++
		remainder--
	}

	return shares
}

// allocateAmount takes the supplied amounts as-is and infers the payer's
// share as whatever is left of the total.
func allocateAmount(total money.Money, payer uuid.UUID, payerInput *ParticipantInput, others []ParticipantInput) ([]Share, error) {
	if payerInput != nil && payerInput.Amount != nil {
		return nil, fmt.Errorf("%w: the payer's amount is inferred, not supplied", ErrInvalidSplit)
	}

	var sum money.Money

	rest := make([]Share, 0, len(others))

	for _, p := range others {
		var amt money.Money
		if p.Amount != nil {
			amt = *p.Amount
		}

		if amt < 0 {
			return nil, fmt.Errorf("%w: negative amount for participant %s", ErrInvalidSplit, p.ID)
		}

		sum += amt

		rest = append(rest, Share{Participant: p.ID, Amount: amt})
	}

	payerAmount := total - sum
	if payerAmount < 0 {
		return nil, fmt.Errorf("%w: supplied amounts %s exceed total %s", ErrInvalidSplit, sum, total)
	}

	return append([]Share{{Participant: payer, Amount: payerAmount}}, rest...), nil
}

// allocatePercentage rounds each share half away from zero and lets the
// last participant in iteration order absorb the residual, so the shares
// sum exactly to the total even though each rounding can be off by up to
// half a minor unit.
func allocatePercentage(total money.Money, payer uuid.UUID, payerInput *ParticipantInput, others []ParticipantInput) ([]Share, error) {
	const wholeBP = 100 * 100

	var payerBP int64
	if payerInput != nil && payerInput.PercentBP != nil {
		payerBP = *payerInput.PercentBP
	}

	bps := []int64{payerBP}
	ids := []uuid.UUID{payer}

	for _, p := range others {
		var bp int64
		if p.PercentBP != nil {
			bp = *p.PercentBP
		}

		bps = append(bps, bp)
		ids = append(ids, p.ID)
	}

	for i, bp := range bps {
		if bp < 0 || bp > wholeBP {
			return nil, fmt.Errorf("%w: percentage for participant %s out of [0,100]", ErrInvalidSplit, ids[i])
		}
	}

	shares := make([]Share, len(ids))

	var allocated money.Money

	for i, id := range ids {
		amt := money.Money(money.RoundHalfAwayFromZero(int64(total)*bps[i], wholeBP))
		shares[i] = Share{Participant: id, Amount: amt}
		allocated += amt
	}

	last := len(shares) - 1
	shares[last].Amount += total - allocated

	if shares[last].Amount < 0 {
		return nil, fmt.Errorf("%w: percentages exceed the total", ErrInvalidSplit)
	}

	return shares, nil
}

// allocateShares floors each participant's proportional amount and
// distributes the residual like the equal policy. Participants with a zero
// share count contribute no fractional part, so they are skipped when the
// residual is handed out and the single pass still exhausts it.
func allocateShares(total money.Money, payer uuid.UUID, payerInput *ParticipantInput, others []ParticipantInput) ([]Share, error) {
	payerCount := int64(1)
	if payerInput != nil && payerInput.Shares != nil {
		payerCount = *payerInput.Shares
	}

	counts := []int64{payerCount}
	ids := []uuid.UUID{payer}

	for _, p := range others {
		var c int64
		if p.Shares != nil {
			c = *p.Shares
		}

		counts = append(counts, c)
		ids = append(ids, p.ID)
	}

	var totalShares int64

	for i, c := range counts {
		if c < 0 {
			return nil, fmt.Errorf("%w: negative share count for participant %s", ErrInvalidSplit, ids[i])
		}

		totalShares += c
	}

	if totalShares == 0 {
		return nil, ErrZeroShares
	}

	shares := make([]Share, len(ids))

	var allocated money.Money

	for i, id := range ids {
		amt := money.Money(int64(total) * counts[i] / totalShares)
		shares[i] = Share{Participant: id, Amount: amt}
		allocated += amt
	}

	residual := total - allocated

	for i := range shares {
		if residual == 0 {
			break
		}

		if counts[i] == 0 {
			continue
		}

		shares[i].Amount++
		residual--
	}

	return shares, nil
}
