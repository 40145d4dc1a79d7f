package database

import "corpay/models"

// SeedVendors and SeedServices give a fresh deployment a usable
// catalog. The real catalog provider replaces these in production.
var SeedVendors = []models.Vendor{
	{ID: "ven-translink", Name: "TransLink Mobility", Status: models.VendorPreferred, ConfirmSLAMinutes: 30, DeliverySLAHours: 24},
	{ID: "ven-medcare", Name: "MedCare Clinics", Status: models.VendorApproved, ConfirmSLAMinutes: 60, DeliverySLAHours: 72},
	{ID: "ven-quickfix", Name: "QuickFix Facilities", Status: models.VendorRestricted, ConfirmSLAMinutes: 120, DeliverySLAHours: 48},
}

var SeedServices = []models.ServiceDefinition{
	{
		ID: "svc-flight", Module: "travel", Category: "travel", Name: "Business flight",
		VendorID: "ven-translink", BasePrice: 180000, Currency: "usd",
		RequiredAttachments: []string{"itinerary"},
		PurposeRequired:     true, NotesRequired: false,
		ApprovalThreshold: 200000,
		RefundPolicy:      "Refundable up to 24h before departure.",
	},
	{
		ID: "svc-checkup", Module: "benefits", Category: "medical", Name: "Executive health checkup",
		VendorID: "ven-medcare", BasePrice: 90000, Currency: "usd",
		RequiredAttachments: []string{"referral"},
		PurposeRequired:     false, NotesRequired: true,
		ApprovalThreshold: 150000,
		RefundPolicy:      "Refundable until the appointment is confirmed.",
	},
	{
		ID: "svc-repair", Module: "facilities", Category: "maintenance", Name: "Office repair visit",
		VendorID: "ven-quickfix", BasePrice: 45000, Currency: "usd",
		PurposeRequired: false, NotesRequired: false,
		ApprovalThreshold: 100000,
		RefundPolicy:      "Non-refundable once work has started.",
	},
}
