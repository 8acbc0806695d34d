// internal/notification/templates.go
package notification

import (
	"fmt"
	"strings"

	"medassist-workers/internal/models"
)

var defaultTemplates = map[string]models.NotificationTemplate{
	models.NotificationOrderConfirmation: {
		Type:    models.NotificationOrderConfirmation,
		Subject: "Order {{orderId}} confirmed",
		Body:    "Your order {{orderId}} for {{quantity}} x {{medicine}} from {{pharmacyName}} is confirmed. Total: ₹{{total}}. Estimated delivery: {{estimatedDelivery}}.",
		SMSBody: "Order {{orderId}} confirmed. ETA {{estimatedDelivery}}.",
	},
	models.NotificationReminder: {
		Type:    models.NotificationReminder,
		Subject: "Medicine reminder: {{medicine}}",
		Body:    "Time to take {{medicine}} {{dosage}} ({{frequency}}). {{notes}}",
		SMSBody: "Reminder: take {{medicine}} {{dosage}} now.",
	},
	models.NotificationEmergencyAlert: {
		Type:    models.NotificationEmergencyAlert,
		Subject: "⚠️ Medical emergency reported",
		Body:    "A symptom check reported a possible medical emergency: \"{{symptoms}}\". Call emergency services (911/108) immediately or go to the nearest ER.",
		SMSBody: "EMERGENCY: {{symptoms}}. Call 911/108 now.",
	},
}

// render substitutes {{key}} placeholders and drops any left unresolved.
func render(tmpl string, data map[string]interface{}) string {
	result := tmpl
	for k, v := range data {
		value := ""
		switch t := v.(type) {
		case string:
			value = t
		case float64:
			value = strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", t), "0"), ".")
		case nil:
		default:
			value = fmt.Sprintf("%v", t)
		}
		result = strings.ReplaceAll(result, "{{"+k+"}}", value)
	}

	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		result = result[:start] + result[start+end+2:]
	}
	return strings.TrimSpace(result)
}
