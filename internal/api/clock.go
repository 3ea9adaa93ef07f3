package api

import "time"

var timeNow = time.Now
