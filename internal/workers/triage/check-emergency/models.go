// internal/workers/triage/check-emergency/models.go
package checkemergency

type Input struct {
	Text string `json:"text"`
}

type Output struct {
	IsEmergency bool `json:"isEmergency"`
}
