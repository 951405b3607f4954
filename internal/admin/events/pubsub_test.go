package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/pubsub/pstest"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"finitefield.org/roster-admin/internal/admin/events"
)

func TestPubSubPublisherPublishesEvent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	srv := pstest.NewServer()
	t.Cleanup(func() { _ = srv.Close() })

	conn, err := grpc.NewClient(srv.Addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	client, err := pubsub.NewClient(ctx, "roster-test", option.WithGRPCConn(conn))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	topic, err := client.CreateTopic(ctx, "mapping-events")
	require.NoError(t, err)

	publisher, err := events.NewPubSubPublisher(topic)
	require.NoError(t, err)
	t.Cleanup(publisher.Stop)

	err = publisher.Publish(ctx, events.Event{
		Type:       events.TypeMappingAdded,
		ReportID:   "r5",
		EmployeeID: "e12",
		OccurredAt: time.Date(2025, 3, 6, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	msgs := srv.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, "mapping.added", msgs[0].Attributes["type"])
	require.Equal(t, "r5", msgs[0].Attributes["reportId"])
	require.Equal(t, "e12", msgs[0].Attributes["employeeId"])
	_, hasSupervisor := msgs[0].Attributes["supervisorId"]
	require.False(t, hasSupervisor)

	var decoded events.Event
	require.NoError(t, json.Unmarshal(msgs[0].Data, &decoded))
	require.Equal(t, events.TypeMappingAdded, decoded.Type)
	require.Equal(t, "e12", decoded.EmployeeID)
}

func TestNewPubSubPublisherRequiresTopic(t *testing.T) {
	t.Parallel()

	_, err := events.NewPubSubPublisher(nil)
	require.Error(t, err)
}

func TestLogPublisherWritesFields(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.InfoLevel)
	active := false
	err := events.NewLogPublisher(zap.New(core)).Publish(context.Background(), events.Event{
		Type:       events.TypeEmployeeStatusUpdate,
		ReportID:   "r1",
		EmployeeID: "e1",
		IsActive:   &active,
	})
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "employee.status_updated", fields["event_type"])
	require.Equal(t, "r1", fields["report_id"])
	require.Equal(t, false, fields["is_active"])
}
