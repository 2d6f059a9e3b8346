package redis

import (
	"fmt"
	"time"
)

// Free-slot lists are cached briefly so repeated browsing of the same
// doctor/date does not hammer the database. A stale entry only ever
// over-offers; booking re-validates inside its transaction anyway.
const slotCacheTTL = 30 * time.Second

func slotKey(doctorID uint, date string) string {
	return fmt.Sprintf("slots:%d:%s", doctorID, date)
}

// GetCachedSlots returns the cached slot-list JSON for a doctor and date, or
// "" on a miss. Cache errors are treated as misses; Redis being down must not
// take slot listing with it.
func GetCachedSlots(doctorID uint, date string) string {
	if Client == nil {
		return ""
	}
	val, err := Client.Get(Ctx, slotKey(doctorID, date)).Result()
	if err != nil {
		return ""
	}
	return val
}

func CacheSlots(doctorID uint, date string, payload []byte) {
	if Client == nil {
		return
	}
	Client.Set(Ctx, slotKey(doctorID, date), payload, slotCacheTTL)
}

// InvalidateSlots drops the cached list after a booking or cancellation so
// the next listing reflects the change immediately.
func InvalidateSlots(doctorID uint, date string) {
	if Client == nil {
		return
	}
	Client.Del(Ctx, slotKey(doctorID, date))
}
