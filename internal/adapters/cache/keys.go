package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Cache keys are md5 digests of a canonical request tuple. Struct field order
// is fixed, attraction ids are sorted, and coordinates are rounded to four
// decimals (~11 m) so jittery client coordinates still hit the same entry.

type optimizeKeyPayload struct {
	Lat   float64  `json:"lat"`
	Lon   float64  `json:"lon"`
	IDs   []string `json:"ids"`
	City  string   `json:"city"`
	Date  string   `json:"date"`
	Hour  int      `json:"hour"`
	Mode  string   `json:"mode"`
}

type trafficKeyPayload struct {
	OriginLat float64 `json:"olat"`
	OriginLon float64 `json:"olon"`
	DestLat   float64 `json:"dlat"`
	DestLon   float64 `json:"dlon"`
	City      string  `json:"city"`
	Hour      int     `json:"hour"`
	DayType   string  `json:"day_type"`
	Month     int     `json:"month"`
}

// OptimizeKey derives the cache key for an optimization request.
func OptimizeKey(lat, lon float64, attractionIDs []string, city, date string, startHour int, mode string) string {
	ids := append([]string(nil), attractionIDs...)
	sort.Strings(ids)

	return digest("optimize", optimizeKeyPayload{
		Lat:  roundCoord(lat),
		Lon:  roundCoord(lon),
		IDs:  ids,
		City: city,
		Date: date,
		Hour: startHour,
		Mode: mode,
	})
}

// TrafficKey derives the cache key for a point-to-point traffic estimate.
func TrafficKey(originLat, originLon, destLat, destLon float64, city string, hour int, dayType string, month int) string {
	return digest("traffic", trafficKeyPayload{
		OriginLat: roundCoord(originLat),
		OriginLon: roundCoord(originLon),
		DestLat:   roundCoord(destLat),
		DestLon:   roundCoord(destLon),
		City:      city,
		Hour:      hour,
		DayType:   dayType,
		Month:     month,
	})
}

func digest(prefix string, payload any) string {
	raw, err := json.Marshal(payload)
	if err != nil {
		// Payload structs contain only plain fields; this cannot fail.
		panic(err)
	}
	sum := md5.Sum(raw)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

func roundCoord(v float64) float64 {
	return math.Round(v*10000) / 10000
}
