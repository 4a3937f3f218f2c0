package services

import (
	"crypto/sha1"
	"encoding/hex"
	"time"
)

// DeriveMeetingID computes the stable short token the WSGateway uses to
// route audio chunks from independent connections to the same Session
// (spec.md §4.1): hash(platform + meetingUrl + day-bucket) truncated.
func DeriveMeetingID(platform, meetingURL string, at time.Time) string {
	dayBucket := at.UTC().Format("2006-01-02")
	sum := sha1.Sum([]byte(platform + "|" + meetingURL + "|" + dayBucket))
	return hex.EncodeToString(sum[:])[:16]
}
