package usecase

// OfferPDFUseCase genera la representación imprimible de una oferta para
// enviársela al cliente. Lee a través de los casos de uso para aprovechar
// el caché y reutilizar los chequeos de existencia.
type OfferPDFUseCase struct {
	offers    *OfferUseCase
	customers *CustomerUseCase
	generator OfferPDFGenerator
}

// NewOfferPDFUseCase construye el caso de uso.
func NewOfferPDFUseCase(offers *OfferUseCase, customers *CustomerUseCase, generator OfferPDFGenerator) *OfferPDFUseCase {
	return &OfferPDFUseCase{offers: offers, customers: customers, generator: generator}
}

// Generate devuelve los bytes del PDF de la oferta indicada.
func (uc *OfferPDFUseCase) Generate(offerID string) ([]byte, error) {
	offer, err := uc.offers.GetByID(offerID)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customers.GetByID(offer.CustomerID)
	if err != nil {
		return nil, err
	}
	return uc.generator.Generate(offer, customer)
}
