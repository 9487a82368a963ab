package services

import (
	"context"
	"fmt"

	"linkup_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoMatchStore implements MatchStore on the Matches table.
type DynamoMatchStore struct {
	Dynamo *DynamoService
}

func matchKey(matchID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"matchId": StringAttr(matchID),
	}
}

// InsertClaiming writes the match and claims every referenced event in one
// transaction. Each event update is conditional on isMatched still being
// false, so two concurrent submissions can never claim the same candidate:
// the loser's transaction cancels and surfaces as ErrCandidateTaken.
func (s *DynamoMatchStore) InsertClaiming(ctx context.Context, match models.Match, eventIDs []string) error {
	item, err := attributevalue.MarshalMap(match)
	if err != nil {
		return storageErr("matches.insert", fmt.Errorf("failed to marshal match: %w", err))
	}

	transactItems := []types.TransactWriteItem{
		{
			Put: &types.Put{
				TableName: strPtr(models.MatchesTable),
				Item:      item,
			},
		},
	}
	for _, eventID := range eventIDs {
		transactItems = append(transactItems, types.TransactWriteItem{
			Update: &types.Update{
				TableName:           strPtr(models.EventsTable),
				Key:                 eventKey(eventID),
				UpdateExpression:    strPtr("SET isMatched = :true"),
				ConditionExpression: strPtr("isMatched = :false"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":true":  BoolAttr(true),
					":false": BoolAttr(false),
				},
			},
		})
	}

	if err := s.Dynamo.TransactWriteItems(ctx, transactItems); err != nil {
		if IsConditionalCheckFailed(err) {
			return ErrCandidateTaken
		}
		return storageErr("matches.insert", err)
	}
	return nil
}

func (s *DynamoMatchStore) FindByID(ctx context.Context, matchID string) (*models.Match, error) {
	item, err := s.Dynamo.GetItem(ctx, models.MatchesTable, matchKey(matchID))
	if err != nil {
		return nil, storageErr("matches.findById", err)
	}
	if item == nil {
		return nil, ErrNotFound
	}
	var match models.Match
	if err := attributevalue.UnmarshalMap(item, &match); err != nil {
		return nil, storageErr("matches.findById", err)
	}
	return &match, nil
}

func (s *DynamoMatchStore) FindByParticipant(ctx context.Context, userID string) ([]models.Match, error) {
	var matches []models.Match
	err := s.Dynamo.ScanWithFilter(ctx, models.MatchesTable, func(item map[string]types.AttributeValue) bool {
		return attrListContains(item, "participants", userID)
	}, &matches)
	if err != nil {
		return nil, storageErr("matches.findByParticipant", err)
	}
	return matches, nil
}

func (s *DynamoMatchStore) FindReferencingAny(ctx context.Context, eventIDs []string) ([]models.Match, error) {
	if len(eventIDs) == 0 {
		return nil, nil
	}
	idSet := make(map[string]struct{}, len(eventIDs))
	for _, id := range eventIDs {
		idSet[id] = struct{}{}
	}

	var matches []models.Match
	err := s.Dynamo.ScanWithFilter(ctx, models.MatchesTable, func(item map[string]types.AttributeValue) bool {
		listAttr, ok := item["events"].(*types.AttributeValueMemberL)
		if !ok {
			return false
		}
		for _, member := range listAttr.Value {
			if v, ok := member.(*types.AttributeValueMemberS); ok {
				if _, hit := idSet[v.Value]; hit {
					return true
				}
			}
		}
		return false
	}, &matches)
	if err != nil {
		return nil, storageErr("matches.findReferencingAny", err)
	}
	return matches, nil
}

// UpdateEvents writes the surviving event-reference list, conditional on
// the stored list still being exactly the one the caller read and on the
// match still existing. Nothing else on the item is touched, so a respond
// landing between the caller's read and this write keeps its status entry.
func (s *DynamoMatchStore) UpdateEvents(ctx context.Context, matchID string, surviving, asRead []string) error {
	survivingAttr, err := attributevalue.Marshal(surviving)
	if err != nil {
		return storageErr("matches.updateEvents", err)
	}
	asReadAttr, err := attributevalue.Marshal(asRead)
	if err != nil {
		return storageErr("matches.updateEvents", err)
	}

	_, err = s.Dynamo.UpdateItemWithCondition(ctx, models.MatchesTable,
		"SET #ev = :surviving",
		"attribute_exists(matchId) AND #ev = :asRead",
		matchKey(matchID),
		map[string]types.AttributeValue{
			":surviving": survivingAttr,
			":asRead":    asReadAttr,
		},
		map[string]string{"#ev": "events"})
	if err != nil {
		if IsConditionalCheckFailed(err) {
			return ErrStaleMatch
		}
		return storageErr("matches.updateEvents", err)
	}
	return nil
}

// UpdateStatus writes the response list and confirmed flag, conditional on
// the stored response list still being exactly the one the caller read and
// on the match still existing. The event-reference list is left alone, so
// a cascade stripping events concurrently is never undone here.
func (s *DynamoMatchStore) UpdateStatus(ctx context.Context, matchID string, status []models.MatchStatus, isConfirmed bool, asRead []models.MatchStatus) error {
	statusAttr, err := attributevalue.Marshal(status)
	if err != nil {
		return storageErr("matches.updateStatus", err)
	}
	asReadAttr, err := attributevalue.Marshal(asRead)
	if err != nil {
		return storageErr("matches.updateStatus", err)
	}

	_, err = s.Dynamo.UpdateItemWithCondition(ctx, models.MatchesTable,
		"SET #st = :status, isConfirmed = :confirmed",
		"attribute_exists(matchId) AND #st = :asRead",
		matchKey(matchID),
		map[string]types.AttributeValue{
			":status":    statusAttr,
			":confirmed": BoolAttr(isConfirmed),
			":asRead":    asReadAttr,
		},
		map[string]string{"#st": "status"})
	if err != nil {
		if IsConditionalCheckFailed(err) {
			return ErrStaleMatch
		}
		return storageErr("matches.updateStatus", err)
	}
	return nil
}

func (s *DynamoMatchStore) Delete(ctx context.Context, matchID string) error {
	if err := s.Dynamo.DeleteItem(ctx, models.MatchesTable, matchKey(matchID)); err != nil {
		return storageErr("matches.delete", err)
	}
	return nil
}

// attrListContains reports whether a string-list attribute contains value.
func attrListContains(item map[string]types.AttributeValue, attr, value string) bool {
	listAttr, ok := item[attr].(*types.AttributeValueMemberL)
	if !ok {
		return false
	}
	for _, member := range listAttr.Value {
		if v, ok := member.(*types.AttributeValueMemberS); ok && v.Value == value {
			return true
		}
	}
	return false
}

func strPtr(s string) *string { return &s }
