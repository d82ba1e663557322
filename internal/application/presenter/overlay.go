package presenter

import (
	"net/url"
	"strings"

	"github.com/jhoicas/erp-portal/internal/application/dto"
	"github.com/jhoicas/erp-portal/internal/domain/access"
)

// renewalSubject asunto del correo de solicitud de renovación.
const renewalSubject = "Subscription Renewal Request"

// Contact canales de soporte que muestran los overlays.
type Contact struct {
	Email    string
	Phone    string
	WhatsApp string
}

// RenewalMailto enlace mailto con el asunto de renovación.
func (c Contact) RenewalMailto() string {
	return "mailto:" + c.Email + "?subject=" + url.PathEscape(renewalSubject)
}

func (c Contact) actions() []dto.ActionView {
	return []dto.ActionView{
		{Kind: "logout", Label: "Logout"},
		{Kind: "renew", Label: "Request Renewal", Href: c.RenewalMailto()},
	}
}

func (c Contact) contacts() []dto.ActionView {
	out := make([]dto.ActionView, 0, 3)
	if c.Email != "" {
		out = append(out, dto.ActionView{Kind: "email", Label: c.Email, Href: "mailto:" + c.Email})
	}
	if c.Phone != "" {
		out = append(out, dto.ActionView{Kind: "phone", Label: c.Phone, Href: "tel:" + strings.ReplaceAll(c.Phone, " ", "")})
	}
	if c.WhatsApp != "" {
		out = append(out, dto.ActionView{Kind: "whatsapp", Label: "Chat with us", Href: c.WhatsApp})
	}
	return out
}

// ExpiredOverlay bloqueo por vencimiento: solo logout y solicitud de renovación.
func ExpiredOverlay(c Contact) *dto.OverlayView {
	return &dto.OverlayView{
		Kind:     string(access.OverlayExpired),
		Icon:     "⏰",
		Headline: "Subscription Expired",
		Body: "Your subscription has expired. To continue using the POS system and access your data, " +
			"please contact our team to renew your subscription.",
		Contacts: c.contacts(),
		Actions:  c.actions(),
	}
}

// SuspendedOverlay bloqueo por suspensión administrativa.
func SuspendedOverlay(c Contact) *dto.OverlayView {
	return &dto.OverlayView{
		Kind:     string(access.OverlaySuspended),
		Icon:     "⛔",
		Headline: "Subscription Suspended",
		Body:     "Your subscription has been suspended. Please contact our team to restore access to your data.",
		Contacts: c.contacts(),
		Actions:  c.actions(),
	}
}

// Overlay descriptor para el overlay decidido por el gate; nil si no hay bloqueo.
func Overlay(kind access.Overlay, c Contact) *dto.OverlayView {
	switch kind {
	case access.OverlayExpired:
		return ExpiredOverlay(c)
	case access.OverlaySuspended:
		return SuspendedOverlay(c)
	default:
		return nil
	}
}
