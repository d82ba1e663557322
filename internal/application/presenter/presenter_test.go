package presenter_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-portal/internal/application/presenter"
	"github.com/jhoicas/erp-portal/internal/domain/access"
	"github.com/jhoicas/erp-portal/internal/domain/entity"
	"github.com/jhoicas/erp-portal/internal/domain/lifecycle"
)

var now = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func stateIn(status entity.SubscriptionStatus, days int) lifecycle.State {
	exp := now.Add(time.Duration(days) * 24 * time.Hour)
	return lifecycle.Evaluate(status, &exp, now)
}

func TestBanner_Niveles(t *testing.T) {
	cases := []struct {
		name     string
		st       lifecycle.State
		level    lifecycle.Level
		color    string
		headline string
		renew    bool
	}{
		{"3 días es crítico", stateIn(entity.StatusActive, 3), lifecycle.LevelCritical, "red-orange", "Subscription expires in 3 days!", true},
		{"1 día singular", stateIn(entity.StatusActive, 1), lifecycle.LevelCritical, "red-orange", "Subscription expires in 1 day!", true},
		{"5 días es aviso", stateIn(entity.StatusActive, 5), lifecycle.LevelWarning, "orange-yellow", "Subscription expires in 5 days", true},
		{"trial crítico", stateIn(entity.StatusTrial, 2), lifecycle.LevelCritical, "red-orange", "Trial expires in 2 days!", true},
		{"trial holgado", stateIn(entity.StatusTrial, 12), lifecycle.LevelTrial, "blue", "You're on a free trial - 12 days remaining", false},
		{"vencida", stateIn(entity.StatusActive, -1), lifecycle.LevelExpired, "red", "Your subscription has expired!", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			level := lifecycle.BannerLevel(tc.st, false)
			require.Equal(t, tc.level, level)
			v := presenter.Banner(level, tc.st)
			assert.True(t, v.Render)
			assert.Equal(t, tc.color, v.UrgencyColor)
			assert.Equal(t, tc.headline, v.Headline)
			assert.Equal(t, tc.renew, v.ShowRenew)
			if tc.renew {
				assert.Equal(t, access.PathSubscription, v.RenewPath)
			}
		})
	}
}

func TestBanner_NingunoNoPinta(t *testing.T) {
	st := stateIn(entity.StatusActive, 30)
	level := lifecycle.BannerLevel(st, false)
	require.Equal(t, lifecycle.LevelNone, level)
	v := presenter.Banner(level, st)
	assert.False(t, v.Render)
	assert.Empty(t, v.Headline)

	// una demo nunca recibe el banner de vencimiento
	assert.Equal(t, lifecycle.LevelNone, lifecycle.BannerLevel(stateIn(entity.StatusTrial, 1), true))
}

func TestBanner_TotalSobreLosNiveles(t *testing.T) {
	st := stateIn(entity.StatusActive, 2)
	for _, level := range lifecycle.Levels {
		v := presenter.Banner(level, st)
		assert.Equal(t, string(level), v.Level)
		assert.Equal(t, level != lifecycle.LevelNone, v.Render)
	}
}

func TestDemoBanner(t *testing.T) {
	cd := lifecycle.DemoCountdown(now.Add(2*time.Hour+15*time.Minute+30*time.Second), now)
	v := presenter.DemoBanner(cd)
	assert.True(t, v.Render)
	assert.Equal(t, presenter.LevelDemo, v.Level)
	assert.Equal(t, "2h 15m remaining", v.Subtext)
	assert.Equal(t, 2, v.HoursRemaining)
	assert.Equal(t, 15, v.MinsRemaining)

	assert.False(t, presenter.DemoBanner(lifecycle.DemoCountdown(now, now)).Render)
}

func TestOverlay_Vencida(t *testing.T) {
	c := presenter.Contact{Email: "support@pos-erp.com", Phone: "+57 300 123 4567", WhatsApp: "https://wa.me/573001234567"}
	ov := presenter.Overlay(access.OverlayExpired, c)
	require.NotNil(t, ov)
	assert.Equal(t, "Subscription Expired", ov.Headline)

	require.Len(t, ov.Actions, 2)
	assert.Equal(t, "logout", ov.Actions[0].Kind)
	assert.Equal(t, "renew", ov.Actions[1].Kind)
	assert.Equal(t, "mailto:support@pos-erp.com?subject=Subscription%20Renewal%20Request", ov.Actions[1].Href)

	require.Len(t, ov.Contacts, 3)
	assert.Equal(t, "tel:+573001234567", ov.Contacts[1].Href)
	assert.Equal(t, "Chat with us", ov.Contacts[2].Label)

	assert.Equal(t, "Subscription Suspended", presenter.Overlay(access.OverlaySuspended, c).Headline)
	assert.Nil(t, presenter.Overlay(access.OverlayNone, c))
}

func TestOverlay_SoloCanalesConfigurados(t *testing.T) {
	ov := presenter.ExpiredOverlay(presenter.Contact{Email: "help@acme.com"})
	require.Len(t, ov.Contacts, 1)
	assert.Equal(t, "email", ov.Contacts[0].Kind)
}

func TestStatusCard(t *testing.T) {
	exp := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	card := presenter.StatusCard(lifecycle.Evaluate(entity.StatusTrial, &exp, now), "Business", &exp)
	assert.Equal(t, "orange", card.Color)
	assert.Equal(t, "Trial Ending Soon", card.Title)
	assert.Equal(t, "Expires: Saturday, October 17, 2026", card.ExpiryLabel)

	later := now.AddDate(0, 2, 0)
	card = presenter.StatusCard(lifecycle.Evaluate(entity.StatusActive, &later, now), "Business", &later)
	assert.Equal(t, "green", card.Color)
	assert.Equal(t, "Your Business plan is active.", card.Description)

	card = presenter.StatusCard(lifecycle.Evaluate(entity.StatusSuspended, &later, now), "Business", &later)
	assert.Equal(t, "gray", card.Color)

	past := now.Add(-24 * time.Hour)
	st := lifecycle.EvaluateSubscription(entity.Subscription{Status: entity.StatusActive, ExpiryDate: &past, CreditDays: 5}, now)
	card = presenter.StatusCard(st, "Business", &past)
	assert.Equal(t, "red", card.Color)
	assert.Contains(t, card.Description, "credit period")

	card = presenter.StatusCard(lifecycle.Evaluate(entity.StatusActive, nil, now), "Enterprise", nil)
	assert.Equal(t, lifecycle.NonExpiringDays, card.DaysRemaining)
	assert.Empty(t, card.ExpiryLabel)
}

func TestLimitLabels(t *testing.T) {
	got := presenter.LimitLabels(entity.Limits{
		entity.LimitMonthlyTransactions: 5000,
		entity.LimitUsers:               1000,
		entity.LimitWarehouses:          entity.Unlimited,
		"api_calls":                     250,
	})
	require.Len(t, got, 4)
	assert.Equal(t, "Users", got[0].Label)
	assert.Equal(t, "1,000", got[0].Text)
	assert.Equal(t, "Warehouses", got[1].Label)
	assert.Equal(t, presenter.UnlimitedLabel, got[1].Text)
	assert.Equal(t, "Transactions", got[2].Label)
	assert.Equal(t, "5,000", got[2].Text)
	assert.Equal(t, "Api Calls", got[3].Label)
	assert.Equal(t, "250", got[3].Text)

	assert.Empty(t, presenter.LimitLabels(nil))
}

func TestNavigation_Orden(t *testing.T) {
	visible := entity.NewModuleSet(entity.ModuleSettings, entity.ModuleSales, entity.ModulePOS, entity.ModuleActivityLogs)
	items := presenter.Navigation(visible)

	keys := make([]string, 0, len(items))
	for _, it := range items {
		keys = append(keys, it.Key)
	}
	assert.Equal(t, []string{"dashboard", "pos", "sales", "subscription", "activity_logs", "settings"}, keys)
	assert.Equal(t, "/customer/dashboard/pos", items[1].Path)
	assert.Equal(t, "Sales & CRM", items[2].Label)
	assert.Equal(t, access.PathSubscription, items[3].Path)
	assert.Equal(t, "/customer/dashboard/activity", items[4].Path)

	assert.Equal(t, []string{"pos", "sales", "activity_logs", "settings"}, presenter.ModuleKeys(visible))
}

func TestNavigation_SinModulos(t *testing.T) {
	items := presenter.Navigation(entity.NewModuleSet())
	require.Len(t, items, 2)
	assert.Equal(t, "dashboard", items[0].Key)
	assert.Equal(t, "subscription", items[1].Key)
}
