package pipeline

// DocumentDomain is the closed set of domains a document can classify into.
// The zero-shot labels are Portuguese because the label set predates the
// enum; the enum exists so branch decisions are switch arms instead of
// string membership tests.
type DocumentDomain string

const (
	DomainFinance         DocumentDomain = "finanças"
	DomainLegal           DocumentDomain = "jurídico"
	DomainHumanResources  DocumentDomain = "recursos humanos"
	DomainMarketing       DocumentDomain = "marketing"
	DomainTechnicalReport DocumentDomain = "relatório técnico"
	DomainConfidential    DocumentDomain = "confidencial"
)

var allDomains = []DocumentDomain{
	DomainFinance,
	DomainLegal,
	DomainHumanResources,
	DomainMarketing,
	DomainTechnicalReport,
	DomainConfidential,
}

// CandidateLabels is the fixed label set handed to the Classifier.
func CandidateLabels() []string {
	labels := make([]string, len(allDomains))
	for i, d := range allDomains {
		labels[i] = string(d)
	}
	return labels
}

// DomainFromLabel maps a classifier label back onto the enum; unrecognized
// labels are not domains and never trigger branches.
func DomainFromLabel(label string) (DocumentDomain, bool) {
	for _, d := range allDomains {
		if string(d) == label {
			return d, true
		}
	}
	return "", false
}
