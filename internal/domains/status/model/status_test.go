package model_test

import (
	"salon/internal/domains/status/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizer_Normalize(t *testing.T) {
	normalizer := model.NewNormalizer([]model.StatusOption{
		{StatusCode: "RESCHEDULED", StatusName: "Re-Scheduled", Active: true},
	})

	tests := []struct {
		name string
		raw  string
		want model.Code
	}{
		{name: "code", raw: "pending", want: model.CodePending},
		{name: "upper case code", raw: "DONE", want: model.CodeDone},
		{name: "display name", raw: "Beautician Assigned", want: model.CodeBeauticianAssigned},
		{name: "padded name", raw: "  On The Way ", want: model.CodeOnTheWay},
		{name: "start alias", raw: "start", want: model.CodeServiceStarted},
		{name: "american spelling", raw: "Canceled", want: model.CodeCancelled},
		{name: "custom code", raw: "rescheduled", want: "rescheduled"},
		{name: "custom name", raw: "re-scheduled", want: "rescheduled"},
		{name: "unknown literal", raw: " Waiting ", want: "waiting"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizer.Normalize(tt.raw))
		})
	}
}

func TestNormalizer_NameCannotCaptureExistingCode(t *testing.T) {
	normalizer := model.NewNormalizer([]model.StatusOption{
		{StatusCode: "awaiting", StatusName: "Pending", Active: true},
		{StatusCode: "vip_queue", StatusName: "VIP Queue", Active: true},
	})

	assert.Equal(t, model.CodePending, normalizer.Normalize("pending"))
	assert.Equal(t, model.CodePending, normalizer.Normalize("Pending"))
	assert.False(t, normalizer.Equal("pending", "awaiting"))
	assert.Equal(t, model.Code("awaiting"), normalizer.Normalize("AWAITING"))
	assert.Equal(t, model.Code("vip_queue"), normalizer.Normalize("vip queue"), "a name equal to its own code still resolves")
}

func TestNormalizer_NilUsesBuiltins(t *testing.T) {
	var normalizer *model.Normalizer

	assert.Equal(t, model.CodeServiceStarted, normalizer.Normalize("Service Started"))
	assert.True(t, normalizer.Equal("start", "service_started"))
	assert.Equal(t, "Done", normalizer.Label("done"))
	assert.Len(t, normalizer.Options(), 7)
}

func TestNormalizer_LabelAndBadge(t *testing.T) {
	normalizer := model.NewNormalizer([]model.StatusOption{
		{StatusCode: "pending", StatusName: "Awaiting Review", Active: true},
	})

	assert.Equal(t, "Awaiting Review", normalizer.Label("PENDING"))
	assert.Equal(t, model.BadgeWarning, normalizer.Badge("awaiting review"))
	assert.Equal(t, "mystery", normalizer.Label("mystery"))
	assert.Equal(t, model.BadgeNeutral, normalizer.Badge("mystery"))
	assert.False(t, normalizer.Known("mystery"))
	assert.True(t, normalizer.Known("Awaiting Review"))
}

func TestNormalizer_OptionsHonourActiveFlag(t *testing.T) {
	normalizer := model.NewNormalizer([]model.StatusOption{
		{StatusCode: "cancelled", StatusName: "Cancelled", Active: false},
		{StatusCode: "vip", StatusName: "VIP", Active: true},
	})

	codes := []string{}
	for _, opt := range normalizer.Options() {
		codes = append(codes, opt.StatusCode)
	}

	assert.NotContains(t, codes, "cancelled")
	assert.Equal(t, "vip", codes[len(codes)-1])
}

func TestCanTransition(t *testing.T) {
	assert.True(t, model.CanTransition(model.CodePending, model.CodeConfirmed))
	assert.True(t, model.CanTransition(model.CodeOnTheWay, model.CodeCancelled))
	assert.False(t, model.CanTransition(model.CodeServiceStarted, model.CodeCancelled))
	assert.False(t, model.CanTransition(model.CodeDone, model.CodePending))
	assert.False(t, model.CanTransition("rescheduled", model.CodeDone))
	assert.True(t, model.IsTerminal(model.CodeDone))
	assert.False(t, model.IsTerminal("rescheduled"))
}

func TestAvailableActions(t *testing.T) {
	normalizer := model.NewNormalizer(nil)

	assert.Equal(t, []model.Action{model.ActionOnTheWay}, normalizer.AvailableActions("Beautician Assigned"))
	assert.Equal(t, []model.Action{model.ActionStart}, normalizer.AvailableActions("on_the_way"))
	assert.Equal(t, []model.Action{model.ActionComplete}, normalizer.AvailableActions("start"))
	assert.Empty(t, normalizer.AvailableActions("done"))

	action, ok := model.ParseAction("Complete")
	assert.True(t, ok)
	assert.True(t, action.RequiresOTP())
	assert.Equal(t, model.CodeDone, action.Target())

	_, ok = model.ParseAction("teleport")
	assert.False(t, ok)
}
