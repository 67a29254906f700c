package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Donations() DonationRepository
	Checkouts() CheckoutRepository
}
