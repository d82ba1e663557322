package presenter

import (
	"fmt"
	"time"

	"github.com/jhoicas/erp-portal/internal/application/dto"
	"github.com/jhoicas/erp-portal/internal/domain/entity"
	"github.com/jhoicas/erp-portal/internal/domain/lifecycle"
)

const expiryLayout = "Monday, January 2, 2006"

// StatusCard tarjeta de estado de la página de suscripción.
func StatusCard(st lifecycle.State, packageName string, expiry *time.Time) dto.StatusCardView {
	v := dto.StatusCardView{DaysRemaining: st.DaysRemaining, ExpiryDate: dto.NewTimestamp(expiry)}
	if expiry != nil {
		v.ExpiryLabel = "Expires: " + expiry.UTC().Format(expiryLayout)
	}
	switch {
	case st.Suspended:
		v.Color, v.Icon, v.Title = "gray", "⛔", "Subscription Suspended"
		v.Description = "Your subscription is suspended. Contact support to restore access."
	case st.Expired:
		v.Color, v.Icon, v.Title = "red", "🚫", "Subscription Expired"
		v.Description = "Your subscription has expired. Please renew to continue."
		if st.InCreditPeriod {
			v.Description += " You are within your credit period."
		}
	case st.Status == entity.StatusTrial && st.DaysRemaining <= 3:
		v.Color, v.Icon, v.Title = "orange", "⚠️", "Trial Ending Soon"
		v.Description = fmt.Sprintf("Your free trial expires in %d day%s. Subscribe to keep access.",
			st.DaysRemaining, plural(st.DaysRemaining))
	case st.Status == entity.StatusTrial:
		v.Color, v.Icon, v.Title = "blue", "🎉", "Free Trial"
		v.Description = fmt.Sprintf("You have %d days to explore all features.", st.DaysRemaining)
	case st.DaysRemaining <= 7:
		v.Color, v.Icon, v.Title = "yellow", "⏰", "Renew Soon"
		v.Description = fmt.Sprintf("Your subscription expires in %d days.", st.DaysRemaining)
	default:
		v.Color, v.Icon, v.Title = "green", "✅", "Active Subscription"
		v.Description = fmt.Sprintf("Your %s plan is active.", packageName)
	}
	return v
}
