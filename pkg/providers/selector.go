package providers

// Provider name tokens that select a non-generic adapter family.
const (
	// ProviderAzureOpenAI selects the Azure deployment adapter.
	ProviderAzureOpenAI = "azure-openai"

	// ProviderBedrock selects the AWS signature-preserving adapter.
	ProviderBedrock = "aws-bedrock"
)

// AdapterSet holds one shared instance of each adapter family and selects
// among them by provider name. Selection is deterministic and pure:
// unrecognized names fall back to the generic adapter, whose base URL table
// lookup surfaces the error if the provider is truly unknown.
type AdapterSet struct {
	generic *GenericAdapter
	azure   *AzureAdapter
	bedrock *BedrockAdapter
}

// NewAdapterSet creates the adapter family instances, with the generic
// adapter backed by the given provider table.
func NewAdapterSet(table *Table) *AdapterSet {
	return &AdapterSet{
		generic: NewGenericAdapter(table),
		azure:   NewAzureAdapter(),
		bedrock: NewBedrockAdapter(),
	}
}

// Select returns the adapter for a provider name token.
func (s *AdapterSet) Select(provider string) Adapter {
	switch provider {
	case ProviderAzureOpenAI:
		return s.azure
	case ProviderBedrock:
		return s.bedrock
	default:
		return s.generic
	}
}
