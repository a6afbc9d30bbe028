package store

import "time"

// SeedMemStore returns a MemStore preloaded with the demo dataset: three
// users with orders across every status, deliveries at different checkpoints,
// and a spread of invoices and refunds. Used by tests and local demo runs.
func SeedMemStore() *MemStore {
	s := NewMemStore()

	base := time.Date(2024, time.December, 1, 9, 0, 0, 0, time.UTC)

	s.PutUser(User{ID: "user_alice", Name: "Alice Johnson", Email: "alice@example.com", Phone: "+1-555-0101", CreatedAt: base})
	s.PutUser(User{ID: "user_bob", Name: "Bob Smith", Email: "bob@example.com", Phone: "+1-555-0102", CreatedAt: base})
	s.PutUser(User{ID: "user_carol", Name: "Carol Davis", Email: "carol@example.com", Phone: "+1-555-0103", CreatedAt: base})

	s.PutOrder(Order{ID: "order_1", OrderNumber: "ORD-1001", UserID: "user_alice", Description: "Electronics - Wireless Headphones + Laptop Stand", OrderStatus: OrderSuccess, Price: 4500, CreatedAt: base.AddDate(0, 0, 10)})
	s.PutOrder(Order{ID: "order_2", OrderNumber: "ORD-1002", UserID: "user_alice", Description: "Books - Go Programming Bundle", OrderStatus: OrderProcessing, Price: 1200, CreatedAt: base.AddDate(0, 0, 20)})
	s.PutOrder(Order{ID: "order_3", OrderNumber: "ORD-1003", UserID: "user_bob", Description: "Gaming Console", OrderStatus: OrderCancelled, Price: 8999, CreatedAt: base.AddDate(0, 0, 5)})
	s.PutOrder(Order{ID: "order_4", OrderNumber: "ORD-1004", UserID: "user_bob", Description: "Mechanical Keyboard", OrderStatus: OrderProcessing, Price: 5500, CreatedAt: base.AddDate(0, 0, 18)})
	s.PutOrder(Order{ID: "order_5", OrderNumber: "ORD-1005", UserID: "user_carol", Description: "Smart Watch", OrderStatus: OrderRefunded, Price: 3200, CreatedAt: base.AddDate(0, 0, 2)})
	s.PutOrder(Order{ID: "order_6", OrderNumber: "ORD-1006", UserID: "user_carol", Description: "Standing Desk", OrderStatus: OrderSuccess, Price: 12000, CreatedAt: base.AddDate(0, 0, -7)})
	s.PutOrder(Order{ID: "order_7", OrderNumber: "ORD-1007", UserID: "user_carol", Description: "Desk Lamp", OrderStatus: OrderProcessing, Price: 800, CreatedAt: base.AddDate(0, 0, 22)})

	s.PutDelivery(Delivery{ID: "del_1", OrderID: "order_1", TrackingNumber: "TRK-FDX-00100123", Carrier: "FedEx", Status: DeliveryDelivered})
	s.PutDelivery(Delivery{ID: "del_2", OrderID: "order_2", TrackingNumber: "TRK-UPS-00200456", Carrier: "UPS", Status: DeliveryOutForDelivery})
	s.PutDelivery(Delivery{ID: "del_4", OrderID: "order_4", TrackingNumber: "TRK-DHL-00400789", Carrier: "DHL", Status: DeliveryDispatched})
	s.PutDelivery(Delivery{ID: "del_5", OrderID: "order_5", TrackingNumber: "TRK-FDX-00500321", Carrier: "FedEx", Status: DeliveryReturned})
	s.PutDelivery(Delivery{ID: "del_6", OrderID: "order_6", TrackingNumber: "TRK-UPS-00600654", Carrier: "UPS", Status: DeliveryDelivered})
	// order_7 has no delivery record yet: still cancellable.

	s.PutInvoice(Invoice{ID: "inv_1", InvoiceNumber: "INV-2024-001", UserID: "user_alice", OrderID: "order_1", Amount: 4237, Tax: 263, Total: 4500, Status: InvoicePaid, CreatedAt: base.AddDate(0, 0, 10)})
	s.PutInvoice(Invoice{ID: "inv_2", InvoiceNumber: "INV-2024-002", UserID: "user_alice", OrderID: "order_2", Amount: 1130, Tax: 70, Total: 1200, Status: InvoicePending, CreatedAt: base.AddDate(0, 0, 20)})
	s.PutInvoice(Invoice{ID: "inv_3", InvoiceNumber: "INV-2024-003", UserID: "user_bob", OrderID: "order_4", Amount: 5180, Tax: 320, Total: 5500, Status: InvoicePending, CreatedAt: base.AddDate(0, 0, 18)})
	s.PutInvoice(Invoice{ID: "inv_4", InvoiceNumber: "INV-2024-004", UserID: "user_carol", OrderID: "order_5", Amount: 3014, Tax: 186, Total: 3200, Status: InvoicePaid, CreatedAt: base.AddDate(0, 0, 2)})

	s.PutRefund(Refund{ID: "ref_1", RefundNumber: "REF-2024-001", UserID: "user_carol", OrderID: "order_5", Amount: 3200, Status: RefundCompleted, Reason: "Defective unit", RequestedAt: base.AddDate(0, 0, 4)})
	s.PutRefund(Refund{ID: "ref_2", RefundNumber: "REF-2024-002", UserID: "user_bob", OrderID: "order_3", Amount: 8999, Status: RefundRequested, Reason: "Order cancelled", RequestedAt: base.AddDate(0, 0, 6)})

	return s
}
