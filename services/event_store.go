package services

import (
	"context"
	"fmt"

	"linkup_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoEventStore implements EventStore on the Events table.
type DynamoEventStore struct {
	Dynamo *DynamoService
}

func eventKey(eventID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"eventId": StringAttr(eventID),
	}
}

func (s *DynamoEventStore) InsertMany(ctx context.Context, events []models.Event) error {
	writeRequests := make([]types.WriteRequest, 0, len(events))
	for _, event := range events {
		item, err := attributevalue.MarshalMap(event)
		if err != nil {
			return storageErr("events.insertMany", fmt.Errorf("failed to marshal event: %w", err))
		}
		writeRequests = append(writeRequests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: item},
		})
	}
	if err := s.Dynamo.BatchWriteItems(ctx, models.EventsTable, writeRequests); err != nil {
		return storageErr("events.insertMany", err)
	}
	return nil
}

func (s *DynamoEventStore) FindByID(ctx context.Context, eventID string) (*models.Event, error) {
	item, err := s.Dynamo.GetItem(ctx, models.EventsTable, eventKey(eventID))
	if err != nil {
		return nil, storageErr("events.findById", err)
	}
	if item == nil {
		return nil, ErrNotFound
	}
	var event models.Event
	if err := attributevalue.UnmarshalMap(item, &event); err != nil {
		return nil, storageErr("events.findById", err)
	}
	return &event, nil
}

func (s *DynamoEventStore) FindOpenSlots(ctx context.Context, date, timeSlot, activity, excludeUserID string) ([]models.Event, error) {
	slotKey := models.BuildSlotKey(date, timeSlot, activity)
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.EventsTable, models.SlotKeyIndex,
		"slotKey = :slot",
		map[string]types.AttributeValue{":slot": StringAttr(slotKey)},
		nil, 0)
	if err != nil {
		return nil, storageErr("events.findOpenSlots", err)
	}

	var candidates []models.Event
	if err := attributevalue.UnmarshalListOfMaps(items, &candidates); err != nil {
		return nil, storageErr("events.findOpenSlots", err)
	}

	// The GSI key narrows to the slot; matched and same-owner filtering is
	// done here to keep the index key simple.
	open := make([]models.Event, 0, len(candidates))
	for _, event := range candidates {
		if event.IsMatched {
			continue
		}
		if excludeUserID != "" && event.UserID == excludeUserID {
			continue
		}
		open = append(open, event)
	}
	return open, nil
}

func (s *DynamoEventStore) FindByOriginalEvent(ctx context.Context, originalEventID string) ([]models.Event, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.EventsTable, models.OriginalEventIndex,
		"originalEventId = :root",
		map[string]types.AttributeValue{":root": StringAttr(originalEventID)},
		nil, 0)
	if err != nil {
		return nil, storageErr("events.findByOriginalEvent", err)
	}
	var events []models.Event
	if err := attributevalue.UnmarshalListOfMaps(items, &events); err != nil {
		return nil, storageErr("events.findByOriginalEvent", err)
	}
	return events, nil
}

func (s *DynamoEventStore) FindByUser(ctx context.Context, userID string) ([]models.Event, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.EventsTable, models.EventUserIndex,
		"userId = :user",
		map[string]types.AttributeValue{":user": StringAttr(userID)},
		nil, 0)
	if err != nil {
		return nil, storageErr("events.findByUser", err)
	}
	var events []models.Event
	if err := attributevalue.UnmarshalListOfMaps(items, &events); err != nil {
		return nil, storageErr("events.findByUser", err)
	}
	return events, nil
}

func (s *DynamoEventStore) FindByDate(ctx context.Context, date string) ([]models.Event, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.EventsTable, models.EventDateIndex,
		"#d = :date",
		map[string]types.AttributeValue{":date": StringAttr(date)},
		map[string]string{"#d": "date"}, 0)
	if err != nil {
		return nil, storageErr("events.findByDate", err)
	}
	var events []models.Event
	if err := attributevalue.UnmarshalListOfMaps(items, &events); err != nil {
		return nil, storageErr("events.findByDate", err)
	}
	return events, nil
}

func (s *DynamoEventStore) UpdateRecurrencePattern(ctx context.Context, eventID, pattern string) (*models.Event, error) {
	attrs, err := s.Dynamo.UpdateItemWithCondition(ctx, models.EventsTable,
		"SET recurrencePattern = :pattern",
		"attribute_exists(eventId)",
		eventKey(eventID),
		map[string]types.AttributeValue{":pattern": StringAttr(pattern)},
		nil)
	if err != nil {
		if IsConditionalCheckFailed(err) {
			return nil, ErrNotFound
		}
		return nil, storageErr("events.updatePattern", err)
	}
	var event models.Event
	if err := attributevalue.UnmarshalMap(attrs, &event); err != nil {
		return nil, storageErr("events.updatePattern", err)
	}
	return &event, nil
}

func (s *DynamoEventStore) Delete(ctx context.Context, eventID string) error {
	if err := s.Dynamo.DeleteItem(ctx, models.EventsTable, eventKey(eventID)); err != nil {
		return storageErr("events.delete", err)
	}
	return nil
}

func (s *DynamoEventStore) DeleteMany(ctx context.Context, eventIDs []string) error {
	if len(eventIDs) == 0 {
		return nil
	}
	writeRequests := make([]types.WriteRequest, 0, len(eventIDs))
	for _, id := range eventIDs {
		writeRequests = append(writeRequests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{Key: eventKey(id)},
		})
	}
	if err := s.Dynamo.BatchWriteItems(ctx, models.EventsTable, writeRequests); err != nil {
		return storageErr("events.deleteMany", err)
	}
	return nil
}
