// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cron parses the schedules that drive the manager's periodic
// tasks and computes when the next run is due.
//
// A schedule is either a 5-field expression:
//
//	minute (0-59)  hour (0-23)  day-of-month (1-31)  month (1-12)  day-of-week (0-6, 0=Sunday)
//
// where each field is a wildcard (*), a value (5), a range (1-5), a
// list (1,3,5), or a step (*/15, 1-30/5); or one of the shortcuts
// @hourly, @daily (@midnight), @weekly, @monthly, @yearly (@annually).
//
// All times are UTC. There is no seconds field and no named days or
// months.
package cron
