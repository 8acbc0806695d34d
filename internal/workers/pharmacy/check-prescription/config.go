// internal/workers/pharmacy/check-prescription/config.go
package checkprescription

type Config struct{}
