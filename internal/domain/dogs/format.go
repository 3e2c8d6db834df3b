package dogs

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

func FormatAge(years, months int) string {
	unit := func(n int, one, many string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, one)
		}
		return fmt.Sprintf("%d %s", n, many)
	}
	switch {
	case years == 0:
		return unit(months, "mes", "meses")
	case months == 0:
		return unit(years, "año", "años")
	default:
		return unit(years, "año", "años") + " y " + unit(months, "mes", "meses")
	}
}

// WhatsAppLink arma el link wa.me con el mensaje prearmado.
// "" si el perro no tiene WhatsApp o teléfono.
func WhatsAppLink(d Dog) string {
	if !d.HasWhatsApp || d.ContactPhone == nil {
		return ""
	}
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, *d.ContactPhone)
	if digits == "" {
		return ""
	}
	if len(digits) == 8 {
		// número local de Costa Rica
		digits = "506" + digits
	}
	msg := fmt.Sprintf("Hola! Estoy interesado en adoptar a %s. Vi su publicación en Pura Pata.\n\nID: %s", d.Name, d.ID)
	return "https://wa.me/" + digits + "?text=" + strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
}
