package i18n

// EnMessages English message catalog
var EnMessages = map[string]string{
	// Tasks
	"task.added":     "Added task %s (id %s).",
	"task.renamed":   "Renamed task %s to %s.",
	"task.alias_set": "Task %s is now aliased %s.",
	"task.none":      "No tasks yet. Add one with `tt add NAME`.",

	// Event transitions
	"event.started":       "Started event %s for %s.",
	"event.split":         "Split. Work so far: %s.",
	"event.split_carried": "Lap is not longer than %d min; keep going.",
	"event.paused":        "Paused.",
	"event.pause_short":   "Lap was too short and was dropped. Paused.",
	"event.resumed":       "Resumed.",
	"event.resume_short":  "Pause was too short and was dropped. Resumed.",
	"event.auto_stopped":  "Pause reached %d min: event %s was stopped and %s started.",
	"event.stopped":       "Stopped event %s. Work: %s.",
	"event.discarded":     "Event %s was not longer than %d min and has been discarded.",
	"event.deleted":       "Deleted event %s.",
	"event.notes_set":     "Notes saved for event %s.",

	// Labels
	"label.id":           "ID",
	"label.task":         "Task",
	"label.alias":        "Alias",
	"label.status":       "Status",
	"label.started":      "Started",
	"label.work":         "Work",
	"label.productivity": "Productivity",
	"label.laps":         "Laps",
	"label.notes":        "Notes",
	"label.kind":         "Kind",
	"label.start":        "Start",
	"label.end":          "End",
	"label.length":       "Length",
	"label.date":         "Date",

	// Status and lap names
	"status.running": "running",
	"status.pausing": "paused",
	"status.stopped": "stopped",
	"lap.split":      "work",
	"lap.pause":      "pause",

	// Listing
	"list.empty":  "No events.",
	"list.total":  "Total work: %s in %d events.",
	"list.recent": "Last %d events",

	// Merge
	"merge.preview": "Dry run: %d events would become %s. Re-run with --yes to apply.",
	"merge.applied": "Merged %d events into %s.",

	// Confirmation
	"confirm.delete":  "Delete event %s? [y/N] ",
	"confirm.merge":   "Apply this merge? [y/N] ",
	"confirm.aborted": "Aborted.",
	"confirm.notes":   "Notes for %s: ",

	// Config
	"config.thresholds": "Thresholds",
	"config.app":        "Application",
	"config.updated":    "%s set to %d min.",
	"config.lang_set":   "Language set to %s.",
	"config.db_set":     "Database path set to %s.",
	"config.minutes":    "%d min",

	// Errors
	"error.no_event":        "No event yet. Start one with `tt start TASK`.",
	"error.in_progress":     "The last event is still in progress. Stop it first.",
	"error.not_running":     "The event is not running.",
	"error.not_pausing":     "The event is not paused.",
	"error.already_stopped": "The event is already stopped.",
	"error.not_found":       "Not found: %s",
	"error.task_exists":     "A task with that name already exists: %s",
	"error.bad_task_name":   "%s. Use letters, digits, '_', '-' or '.'.",
	"error.bad_date":        "Malformed date: %s",
	"error.merge":           "Cannot merge: %s",
	"error.usage":           "Usage: %s",
	"error.unknown_command": "Unknown command %q. Run `tt help`.",
	"error.generic":         "Error: %v",

	// Watch (TUI)
	"watch.title":  "tt watch",
	"watch.idle":   "No active event. Start one with `tt start TASK`.",
	"watch.split":  "split",
	"watch.pause":  "pause",
	"watch.resume": "resume",
	"watch.stop":   "stop",
	"watch.quit":   "quit",

	// Help
	"help.body": `# tt: focus time tracker

## Tasks
- ` + "`tt add NAME [--alias A]`" + ` add a task
- ` + "`tt tasks`" + ` list tasks
- ` + "`tt alias NAME ALIAS`" + ` set an alias
- ` + "`tt rename OLD NEW`" + ` rename a task

## Events
- ` + "`tt start TASK`" + ` start an event (name or alias)
- ` + "`tt split`" + ` close the current work lap
- ` + "`tt pause`" + ` / ` + "`tt resume`" + ` take a break
- ` + "`tt stop`" + ` finish the event
- ` + "`tt status [ID]`" + ` show the last (or given) event
- ` + "`tt list [-n N | --day YYYY-MM-DD | --month YYYY-MM]`" + ` list events
- ` + "`tt notes ID TEXT`" + ` set notes
- ` + "`tt delete ID [--yes]`" + ` delete an event
- ` + "`tt merge ID ID... [--yes]`" + ` merge adjacent events (dry run without --yes)
- ` + "`tt watch`" + ` live view

## Settings
- ` + "`tt config`" + ` show settings
- ` + "`tt config set split_min|pause_min|pause_max MINUTES`" + `
- ` + "`tt lang en|zh-CN`" + `
- ` + "`tt db PATH`" + `
- ` + "`tt version`" + `
`,
}
