package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/vitalkeeper/internal/client/models"
	"github.com/dmitrijs2005/vitalkeeper/internal/common"
	"github.com/dmitrijs2005/vitalkeeper/internal/cryptox"
)

func TestGeneratePairingCode_Alphabet(t *testing.T) {
	p := cryptox.NewProvider(nil)
	for range 50 {
		code, err := GeneratePairingCode(p)
		require.NoError(t, err)
		require.Len(t, code, PairingCodeLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(pairingCodeAlphabet, r), "unexpected rune %q", r)
		}
	}
}

func TestGeneratePairingCode_RejectsBiasedBytes(t *testing.T) {
	src := []byte{0, 1, 25, 26, 35, 255, 36, 0, 0, 0, 0, 0}
	code, err := GeneratePairingCode(cryptox.NewProvider(bytes.NewReader(src)))
	require.NoError(t, err)
	assert.Equal(t, "ABZ09A", code)
}

func TestGeneratePairingCode_RandomnessFailure(t *testing.T) {
	_, err := GeneratePairingCode(cryptox.NewProvider(bytes.NewReader(nil)))
	require.ErrorIs(t, err, cryptox.ErrRandomnessUnavailable)
}

func TestNormalizePairingCode(t *testing.T) {
	code, err := NormalizePairingCode(" ab12cd ")
	require.NoError(t, err)
	assert.Equal(t, "AB12CD", code)

	for _, bad := range []string{"", "ABC", "ABCDEFG", "AB-12C", "ÄB12CD"} {
		_, err := NormalizePairingCode(bad)
		require.ErrorIs(t, err, ErrInvalidPairingCode, bad)
	}
}

func TestPairing_Flow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alex := signup(t, env, "alex@example.com")
	sam := signup(t, env, "sam@example.com")
	kim := signup(t, env, "kim@example.com")

	code, err := env.partners.CreateCode(ctx, alex)
	require.NoError(t, err)

	open, err := env.partners.Partnership(ctx, alex)
	require.NoError(t, err)
	assert.False(t, open.Paired())
	assert.Equal(t, code, open.PairingCode)
	assert.Equal(t, models.DefaultSharedData, open.SharedData)

	_, err = env.partners.Pair(ctx, alex, code)
	require.ErrorIs(t, err, ErrSelfPairing)

	_, err = env.partners.Pair(ctx, sam, "ZZZZZZ")
	require.ErrorIs(t, err, ErrInvalidPairingCode)

	mine, err := env.partners.Pair(ctx, sam, strings.ToLower(code))
	require.NoError(t, err)
	assert.Equal(t, alex.UserID(), mine.PartnerID)

	theirs, err := env.partners.Partnership(ctx, alex)
	require.NoError(t, err)
	assert.Equal(t, sam.UserID(), theirs.PartnerID)

	_, err = env.partners.Pair(ctx, kim, code)
	require.ErrorIs(t, err, ErrPairingCodeUsed)

	_, err = env.partners.CreateCode(ctx, sam)
	require.ErrorIs(t, err, ErrAlreadyPaired)

	kimCode, err := env.partners.CreateCode(ctx, kim)
	require.NoError(t, err)
	_, err = env.partners.Pair(ctx, alex, kimCode)
	require.ErrorIs(t, err, ErrAlreadyPaired)

	kimOpen, err := env.partners.Partnership(ctx, kim)
	require.NoError(t, err)
	assert.False(t, kimOpen.Paired(), "failed pairing leaves the issuer untouched")
}

func TestPartnerSummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alex := signup(t, env, "alex@example.com")
	sam := signup(t, env, "sam@example.com")

	_, err := env.partners.Summary(ctx, alex)
	require.ErrorIs(t, err, common.ErrorNotFound)

	code, err := env.partners.CreateCode(ctx, alex)
	require.NoError(t, err)
	_, err = env.partners.Summary(ctx, alex)
	require.ErrorIs(t, err, common.ErrorNotFound, "open code is not a pairing")

	_, err = env.partners.Pair(ctx, sam, code)
	require.NoError(t, err)

	for _, d := range []int{0, -1, -2} {
		_, err := env.checkIns.Save(ctx, alex, models.CheckIn{Date: day(d), Sleep: true})
		require.NoError(t, err)
	}
	_, err = env.checkIns.Save(ctx, sam, models.CheckIn{Sleep: true, Stress: true})
	require.NoError(t, err)

	sum, err := env.partners.Summary(ctx, alex)
	require.NoError(t, err)
	assert.Equal(t, "Alex", sum.PartnerName)
	assert.Equal(t, 3, sum.Mine.TotalCheckIns)
	assert.Equal(t, 1, sum.Partner.TotalCheckIns)
	assert.Equal(t, 1, sum.CombinedDays)
	assert.Equal(t, 17, sum.Mine.WeeklyCompletionRate)
	assert.Equal(t, 33, sum.Partner.WeeklyCompletionRate)

	events, err := env.rm.Analytics(env.db).ListByUser(ctx, sam.UserID())
	require.NoError(t, err)
	var paired bool
	for _, e := range events {
		paired = paired || e.Event == models.EventPartnerPaired
	}
	assert.True(t, paired)
}

func TestPartner_RequiresSession(t *testing.T) {
	env := newTestEnv(t)
	s := signup(t, env, "alex@example.com")
	s.Destroy()

	_, err := env.partners.CreateCode(context.Background(), s)
	require.ErrorIs(t, err, common.ErrorNoSession)
	_, err = env.partners.Pair(context.Background(), s, "ABCDEF")
	require.ErrorIs(t, err, common.ErrorNoSession)
}
