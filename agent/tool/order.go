package tool

import (
	"context"
	"errors"

	contractx "github.com/pattarad/relaydesk/agent/contract"
	storex "github.com/pattarad/relaydesk/store"
)

func opGetOrderDetails(data OrderData) operation {
	return func(ctx context.Context, userID string, args map[string]any) contractx.ToolResult {
		if userID == "" {
			return missingUserID(ToolGetOrderDetails)
		}

		var key storex.LookupKey
		switch {
		case stringArg(args, "orderId") != "":
			key = storex.KeyByID(stringArg(args, "orderId"))
		case stringArg(args, "orderNumber") != "":
			key = storex.KeyByNumber(stringArg(args, "orderNumber"))
		default:
			return failure(ToolGetOrderDetails, "orderId or orderNumber is required")
		}

		order, err := data.Order(ctx, userID, key)
		switch {
		case errors.Is(err, storex.ErrNotFound):
			return failure(ToolGetOrderDetails, "Order not found")
		case err != nil:
			return failure(ToolGetOrderDetails, "Failed to fetch order details")
		}
		return success(ToolGetOrderDetails, order)
	}
}

func opGetDeliveryStatus(data OrderData) operation {
	return func(ctx context.Context, userID string, args map[string]any) contractx.ToolResult {
		if userID == "" {
			return missingUserID(ToolGetDeliveryStatus)
		}

		orderID := stringArg(args, "orderId")
		if orderID == "" {
			return failure(ToolGetDeliveryStatus, "orderId is required")
		}

		delivery, err := data.DeliveryStatus(ctx, userID, orderID)
		switch {
		case errors.Is(err, storex.ErrNotFound):
			return failure(ToolGetDeliveryStatus, "Order not found")
		case errors.Is(err, storex.ErrNoDelivery):
			return failure(ToolGetDeliveryStatus, "No delivery information available")
		case err != nil:
			return failure(ToolGetDeliveryStatus, "Failed to fetch delivery status")
		}
		return success(ToolGetDeliveryStatus, delivery)
	}
}

func opGetUserOrders(data OrderData) operation {
	return func(ctx context.Context, userID string, args map[string]any) contractx.ToolResult {
		if userID == "" {
			return missingUserID(ToolGetUserOrders)
		}

		orders, err := data.UserOrders(ctx, userID, intArg(args, "limit", 10))
		if err != nil {
			return failure(ToolGetUserOrders, "Failed to fetch user orders")
		}
		return success(ToolGetUserOrders, orders)
	}
}

func opCancelOrder(data OrderData) operation {
	return func(ctx context.Context, userID string, args map[string]any) contractx.ToolResult {
		if userID == "" {
			return missingUserID(ToolCancelOrder)
		}

		orderID := stringArg(args, "orderId")
		if orderID == "" {
			return failure(ToolCancelOrder, "orderId is required")
		}

		out, err := data.CancelOrder(ctx, userID, orderID, stringArg(args, "reason"))
		switch {
		case errors.Is(err, storex.ErrNotFound):
			return failure(ToolCancelOrder, "Order not found")
		case errors.Is(err, storex.ErrAlreadyCancelled):
			return failure(ToolCancelOrder, "Order is already cancelled")
		case errors.Is(err, storex.ErrOrderRefunded):
			return failure(ToolCancelOrder, "Cannot cancel a refunded order")
		case errors.Is(err, storex.ErrOrderShipped):
			return failure(ToolCancelOrder, "Cannot cancel an order that has already been shipped")
		case err != nil:
			return failure(ToolCancelOrder, "Failed to cancel order")
		}
		return success(ToolCancelOrder, out)
	}
}

// opGetOrderByTracking is the one order operation without an ownership check:
// lookup is by tracking number alone, for unauthenticated tracking checks.
func opGetOrderByTracking(data OrderData) operation {
	return func(ctx context.Context, _ string, args map[string]any) contractx.ToolResult {
		trackingNumber := stringArg(args, "trackingNumber")
		if trackingNumber == "" {
			return failure(ToolGetOrderByTracking, "trackingNumber is required")
		}

		delivery, err := data.OrderByTracking(ctx, trackingNumber)
		switch {
		case errors.Is(err, storex.ErrNotFound):
			return failure(ToolGetOrderByTracking, "Tracking number not found")
		case err != nil:
			return failure(ToolGetOrderByTracking, "Failed to find order by tracking number")
		}
		return success(ToolGetOrderByTracking, delivery)
	}
}
