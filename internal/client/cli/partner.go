package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/services"
	"github.com/dmitrijs2005/vitalkeeper/internal/common"
)

// PairCode creates (or shows the open) pairing code.
func (a *App) PairCode(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	code, err := a.partners.CreateCode(ctx, a.session)
	if errors.Is(err, services.ErrAlreadyPaired) {
		a.println("You are already paired with a partner")
		return err
	}
	if err != nil {
		return a.fail(err)
	}
	a.printf("Share this code with your partner: %s\n", code)
	return nil
}

// Pair links the session user with the owner of a pairing code. The code
// comes from args or is asked for.
func (a *App) Pair(ctx context.Context, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}

	var code string
	if len(args) > 0 {
		code = args[0]
	} else {
		var err error
		if code, err = getSimpleText(a.reader, "Enter your partner's code", a.out); err != nil {
			return err
		}
	}

	_, err := a.partners.Pair(ctx, a.session, code)
	switch {
	case err == nil:
		a.println("Paired! Use 'partner' to compare progress.")
		return nil
	case errors.Is(err, services.ErrInvalidPairingCode):
		a.println("Invalid pairing code")
	case errors.Is(err, services.ErrPairingCodeUsed):
		a.println("This code has already been used")
	case errors.Is(err, services.ErrSelfPairing):
		a.println("You cannot pair with your own code")
	case errors.Is(err, services.ErrAlreadyPaired):
		a.println("You are already paired with a partner")
	default:
		return a.fail(err)
	}
	return err
}

// Partner compares the weekly progress of both partners.
func (a *App) Partner(ctx context.Context) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	sum, err := a.partners.Summary(ctx, a.session)
	if errors.Is(err, common.ErrorNotFound) {
		a.println("Not paired yet. Use 'paircode' or 'pair <code>'.")
		return nil
	}
	if err != nil {
		return a.fail(err)
	}

	a.printf("Partner: %s\n", sum.PartnerName)
	a.printf("%-10s %8s %8s %8s\n", "", "week", "streak", "total")
	a.printf("%-10s %7d%% %8d %8d\n", "You", sum.Mine.WeeklyCompletionRate, sum.Mine.CurrentStreak, sum.Mine.TotalCheckIns)
	a.printf("%-10s %7d%% %8d %8d\n", "Partner", sum.Partner.WeeklyCompletionRate, sum.Partner.CurrentStreak, sum.Partner.TotalCheckIns)
	a.printf("Days together: %d\n", sum.CombinedDays)
	return nil
}
