package tool

import (
	"context"
	"errors"

	contractx "github.com/pattarad/relaydesk/agent/contract"
	storex "github.com/pattarad/relaydesk/store"
)

func opGetInvoiceDetails(data BillingData) operation {
	return func(ctx context.Context, userID string, args map[string]any) contractx.ToolResult {
		if userID == "" {
			return missingUserID(ToolGetInvoiceDetails)
		}

		var key storex.LookupKey
		switch {
		case stringArg(args, "invoiceId") != "":
			key = storex.KeyByID(stringArg(args, "invoiceId"))
		case stringArg(args, "invoiceNumber") != "":
			key = storex.KeyByNumber(stringArg(args, "invoiceNumber"))
		default:
			return failure(ToolGetInvoiceDetails, "invoiceId or invoiceNumber is required")
		}

		invoice, err := data.Invoice(ctx, userID, key)
		switch {
		case errors.Is(err, storex.ErrNotFound):
			return failure(ToolGetInvoiceDetails, "Invoice not found")
		case err != nil:
			return failure(ToolGetInvoiceDetails, "Failed to fetch invoice details")
		}
		return success(ToolGetInvoiceDetails, invoice)
	}
}

func opGetUserInvoices(data BillingData) operation {
	return func(ctx context.Context, userID string, args map[string]any) contractx.ToolResult {
		if userID == "" {
			return missingUserID(ToolGetUserInvoices)
		}

		status := storex.InvoiceStatus(stringArg(args, "status"))
		invoices, err := data.UserInvoices(ctx, userID, status, intArg(args, "limit", 10))
		if err != nil {
			return failure(ToolGetUserInvoices, "Failed to fetch user invoices")
		}
		return success(ToolGetUserInvoices, invoices)
	}
}

func opGetRefundStatus(data BillingData) operation {
	return func(ctx context.Context, userID string, args map[string]any) contractx.ToolResult {
		if userID == "" {
			return missingUserID(ToolGetRefundStatus)
		}

		var key storex.LookupKey
		switch {
		case stringArg(args, "refundId") != "":
			key = storex.KeyByID(stringArg(args, "refundId"))
		case stringArg(args, "refundNumber") != "":
			key = storex.KeyByNumber(stringArg(args, "refundNumber"))
		case stringArg(args, "orderId") != "":
			key = storex.KeyByOrderID(stringArg(args, "orderId"))
		default:
			return failure(ToolGetRefundStatus, "refundId, refundNumber, or orderId is required")
		}

		refund, err := data.Refund(ctx, userID, key)
		switch {
		case errors.Is(err, storex.ErrNotFound):
			return failure(ToolGetRefundStatus, "Refund not found")
		case err != nil:
			return failure(ToolGetRefundStatus, "Failed to fetch refund status")
		}
		return success(ToolGetRefundStatus, refund)
	}
}

func opGetUserRefunds(data BillingData) operation {
	return func(ctx context.Context, userID string, args map[string]any) contractx.ToolResult {
		if userID == "" {
			return missingUserID(ToolGetUserRefunds)
		}

		status := storex.RefundStatus(stringArg(args, "status"))
		refunds, err := data.UserRefunds(ctx, userID, status)
		if err != nil {
			return failure(ToolGetUserRefunds, "Failed to fetch user refunds")
		}
		return success(ToolGetUserRefunds, refunds)
	}
}

func opGetBillingSummary(data BillingData) operation {
	return func(ctx context.Context, userID string, _ map[string]any) contractx.ToolResult {
		if userID == "" {
			return missingUserID(ToolGetBillingSummary)
		}

		summary, err := data.BillingSummary(ctx, userID)
		if err != nil {
			return failure(ToolGetBillingSummary, "Failed to fetch billing summary")
		}
		return success(ToolGetBillingSummary, summary)
	}
}
