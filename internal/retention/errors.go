// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package retention

import "errors"

// ErrStorageQuotaExceeded is returned when an eviction pass cannot reach the
// target size because everything left is unexpired critical data.
var ErrStorageQuotaExceeded = errors.New("storage quota exceeded: only unexpired critical documents remain")
