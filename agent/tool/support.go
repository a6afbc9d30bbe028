package tool

import (
	"context"
	"errors"

	contractx "github.com/pattarad/relaydesk/agent/contract"
	storex "github.com/pattarad/relaydesk/store"
)

func opGetConversationHistory(data SupportData) operation {
	return func(ctx context.Context, userID string, args map[string]any) contractx.ToolResult {
		if userID == "" {
			return missingUserID(ToolGetConversationHistory)
		}

		conversations, err := data.ConversationHistory(ctx, userID, intArg(args, "limit", 10))
		if err != nil {
			return failure(ToolGetConversationHistory, "Failed to fetch conversation history")
		}
		return success(ToolGetConversationHistory, conversations)
	}
}

func opGetUserProfile(data SupportData) operation {
	return func(ctx context.Context, userID string, _ map[string]any) contractx.ToolResult {
		if userID == "" {
			return missingUserID(ToolGetUserProfile)
		}

		profile, err := data.UserProfile(ctx, userID)
		switch {
		case errors.Is(err, storex.ErrNotFound):
			return failure(ToolGetUserProfile, "User not found")
		case err != nil:
			return failure(ToolGetUserProfile, "Failed to fetch user profile")
		}
		return success(ToolGetUserProfile, profile)
	}
}

func opGetRecentActivity(data SupportData) operation {
	return func(ctx context.Context, userID string, _ map[string]any) contractx.ToolResult {
		if userID == "" {
			return missingUserID(ToolGetRecentActivity)
		}

		activity, err := data.RecentActivity(ctx, userID)
		if err != nil {
			return failure(ToolGetRecentActivity, "Failed to fetch recent activity")
		}
		return success(ToolGetRecentActivity, activity)
	}
}
