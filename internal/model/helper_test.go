package model

import "time"

var testNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
