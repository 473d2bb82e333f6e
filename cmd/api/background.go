package main

import (
	"context"
	"time"
)

func (app *application) markCompletedClassesEvery30Mins() {
	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()

	// Run once immediately
	app.markCompletedClasses()

	// Then run every 30 minutes
	for range ticker.C {
		app.markCompletedClasses()
	}
}

func (app *application) markCompletedClasses() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.store.Classes.MarkCompletedClasses(ctx); err != nil {
		app.logger.Errorf("Error marking classes as completed: %v", err)
	} else {
		app.logger.Infof("Successfully marked classes as completed at %s", time.Now().Format(time.RFC1123))
	}
}
