package services

import "time"

// Now is the service clock. Tests override it to pin "today".
var Now = time.Now
