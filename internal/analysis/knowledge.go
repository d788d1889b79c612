package analysis

// CompanyKnowledge is the fixed knowledge base rendered into the
// response-generation prompt. A production deployment would source this
// from a document store; the copilot's behavior only depends on the
// rendered text.
type CompanyKnowledge struct {
	BillingPolicies    []string
	EscalationTriggers []string
	ResponseTemplates  map[string]string
}

func DefaultKnowledge() CompanyKnowledge {
	return CompanyKnowledge{
		BillingPolicies: []string{
			"Refunds available within 30 days of purchase",
			"Premium features include priority support and advanced analytics",
			"Billing cycles can be changed with 48 hours notice",
		},
		EscalationTriggers: []string{
			"Cancellation threats",
			"Premium customer complaints",
			"Data security concerns",
			"Integration failures affecting business operations",
		},
		ResponseTemplates: map[string]string{
			"billing_dispute": "I understand your concern about billing. Let me review your account and ensure everything is accurate.",
			"feature_request": "Thank you for the suggestion! I'll make sure our product team sees this feedback.",
			"technical_issue": "I apologize for the technical difficulties. Let me get our engineering team involved to resolve this quickly.",
		},
	}
}
