package jobs

import (
	"log"

	"github.com/SANDEEPxKOMMINENI/Sustainable-Living-Education/services"
)

// SweepExpiredAttempts times out every in-progress exam attempt whose
// deadline has passed. The exam clock is enforced here on the server
// even when the client never comes back; it runs every minute via
// cron.
func SweepExpiredAttempts() {
	swept, err := services.Engine.SweepExpired()
	if err != nil {
		log.Printf("🔥 Error sweeping expired exam attempts: %v", err)
		return
	}
	if swept > 0 {
		log.Printf("⏰ Timed out %d expired exam attempt(s)", swept)
	}
}
