// Package watcher reports changes to the timetrack database file.
//
// Every timetrack command saves the whole tracker snapshot, which SQLite
// writes to the database file or its WAL. The Watcher listens for those
// writes with fsnotify and calls back once per burst of events, so a
// long-running "status --follow" can reload and reprint.
//
// Example usage:
//
//	w, err := watcher.New("~/.timetrack/timetrack.db")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer w.Close()
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	err = w.Run(ctx, func() {
//		// reload and render
//	})
package watcher
