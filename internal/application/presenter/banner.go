// Package presenter convierte estados de dominio en descriptores de UI (banners, overlays,
// tarjetas de estado, límites y pestañas). No decide acceso: solo describe.
package presenter

import (
	"fmt"

	"github.com/jhoicas/erp-portal/internal/application/dto"
	"github.com/jhoicas/erp-portal/internal/domain/access"
	"github.com/jhoicas/erp-portal/internal/domain/entity"
	"github.com/jhoicas/erp-portal/internal/domain/lifecycle"
)

// LevelDemo nivel del banner de countdown de cuentas demo.
const LevelDemo = "demo"

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func subject(st lifecycle.State) string {
	if st.Status == entity.StatusTrial {
		return "Trial"
	}
	return "Subscription"
}

// Banner descriptor del banner de vencimiento; total sobre todos los niveles.
func Banner(level lifecycle.Level, st lifecycle.State) dto.BannerView {
	v := dto.BannerView{Level: string(level), DaysRemaining: st.DaysRemaining}
	switch level {
	case lifecycle.LevelExpired:
		v.Render, v.UrgencyColor, v.Icon = true, "red", "🚫"
		v.Headline = "Your subscription has expired!"
		v.Subtext = "Please renew to continue using all features."
		v.ShowRenew = true
	case lifecycle.LevelCritical:
		v.Render, v.UrgencyColor, v.Icon = true, "red-orange", "⚠️"
		v.Headline = fmt.Sprintf("%s expires in %d day%s!", subject(st), st.DaysRemaining, plural(st.DaysRemaining))
		v.Subtext = "Renew now to avoid interruption."
		v.ShowRenew = true
	case lifecycle.LevelWarning:
		v.Render, v.UrgencyColor, v.Icon = true, "orange-yellow", "⏰"
		v.Headline = fmt.Sprintf("%s expires in %d days", subject(st), st.DaysRemaining)
		v.Subtext = "Consider renewing soon."
		v.ShowRenew = true
	case lifecycle.LevelTrial:
		v.Render, v.UrgencyColor, v.Icon = true, "blue", "🎉"
		v.Headline = fmt.Sprintf("You're on a free trial - %d days remaining", st.DaysRemaining)
		v.Subtext = "Explore all features!"
	default:
		return dto.BannerView{Level: string(lifecycle.LevelNone)}
	}
	if v.ShowRenew {
		v.RenewPath = access.PathSubscription
	}
	return v
}

// CountdownText "Xh Ym".
func CountdownText(cd lifecycle.Countdown) string {
	return fmt.Sprintf("%dh %dm", cd.Hours, cd.Minutes)
}

// DemoBanner banner de countdown de la cuenta demo; una demo vencida no pinta nada.
func DemoBanner(cd lifecycle.Countdown) dto.BannerView {
	if cd.Expired {
		return dto.BannerView{Level: LevelDemo}
	}
	return dto.BannerView{
		Level:          LevelDemo,
		Render:         true,
		UrgencyColor:   "teal",
		Icon:           "🎮",
		Headline:       "Demo Mode",
		Subtext:        CountdownText(cd) + " remaining",
		HoursRemaining: cd.Hours,
		MinsRemaining:  cd.Minutes,
	}
}
