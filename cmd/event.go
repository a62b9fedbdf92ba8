package cmd

import (
	"context"
	"time"

	"github.com/hostelhub/server/internal/core/events"
	"github.com/hostelhub/server/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event bus commands",
	Long:  `Publish test events to the in-process bus for debugging handlers`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a test audit event",
	Long:  `Publish a test audit event (for example mess.menu_published) and log what a subscriber receives`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		publishTestEvent(args[0])
	},
}

var (
	eventActorID  int64
	eventTargetID int64
	eventDetails  string
)

func publishTestEvent(eventType string) {
	logger := logger.LoggerWrapper()

	eventBus := events.NewEventBus(logger)

	eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		logger.Info("test handler received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	testEvent := events.NewAuditEvent(eventType, eventActorID, eventTargetID, eventDetails)

	logger.Info("publishing test event", "event_type", eventType, "event_id", testEvent.ID)

	ctx := context.Background()
	if err := eventBus.Publish(ctx, testEvent); err != nil {
		logger.Error("failed to publish event", "error", err)
		return
	}

	time.Sleep(100 * time.Millisecond)
	logger.Info("test event published successfully")
}

func init() {
	publishEventCmd.Flags().Int64Var(&eventActorID, "actor", 0, "Acting user id")
	publishEventCmd.Flags().Int64Var(&eventTargetID, "target", 0, "Affected record id")
	publishEventCmd.Flags().StringVar(&eventDetails, "details", "cli test event", "Detail line")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
