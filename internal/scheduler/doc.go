// Package scheduler drives the exchange rate imports from process lifecycle hooks.
//
// Two tasks are registered:
//   - an on-start task that imports the wide startup window once, in the background
//   - a recurring cron task (17:00 server time by default) that imports today only
//
// Both delegate to the same import operation. Overlapping firings of the recurring
// task are skipped, and the import service itself serializes concurrent runs.
// Import failures are logged and never stop the scheduler; the next firing retries.
package scheduler
