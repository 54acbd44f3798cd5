package domain

// AccountType selects the income-tax regime applied to a user.
type AccountType string

const (
	AccountTypeIndividual AccountType = "individual"
	AccountTypeBusiness   AccountType = "business"
)

// ExpenseCategory classifies a recorded business expense.
type ExpenseCategory string

const (
	ExpenseCategoryRent             ExpenseCategory = "rent"
	ExpenseCategorySalaries         ExpenseCategory = "salaries"
	ExpenseCategoryUtilities        ExpenseCategory = "utilities"
	ExpenseCategoryTransport        ExpenseCategory = "transport"
	ExpenseCategorySupplies         ExpenseCategory = "supplies"
	ExpenseCategoryProfessionalFees ExpenseCategory = "professional_fees"
	ExpenseCategoryMarketing        ExpenseCategory = "marketing"
	ExpenseCategoryMaintenance      ExpenseCategory = "maintenance"
	ExpenseCategoryInsurance        ExpenseCategory = "insurance"
	ExpenseCategoryOther            ExpenseCategory = "other"
)

// AssetCategory determines the capital allowance rates of a qualifying asset.
type AssetCategory string

const (
	AssetCategoryIndustrialBuilding    AssetCategory = "industrial_building"
	AssetCategoryNonIndustrialBuilding AssetCategory = "non_industrial_building"
	AssetCategoryPlantMachinery        AssetCategory = "plant_machinery"
	AssetCategoryMotorVehicle          AssetCategory = "motor_vehicle"
	AssetCategoryFurnitureFittings     AssetCategory = "furniture_fittings"
	AssetCategoryRanchingPlantation    AssetCategory = "ranching_plantation"
)

// AssetState is the capital allowance lifecycle of an asset in a given year.
type AssetState string

const (
	AssetStateNotYetAcquired   AssetState = "not_yet_acquired"
	AssetStateAcquired         AssetState = "acquired"
	AssetStateDepreciating     AssetState = "depreciating"
	AssetStateFullyWrittenDown AssetState = "fully_written_down"
)

// VATTransactionType distinguishes VAT charged to customers from VAT paid to suppliers.
type VATTransactionType string

const (
	VATOutput VATTransactionType = "output"
	VATInput  VATTransactionType = "input"
)

// FilingStatus is the lifecycle of a monthly VAT return.
type FilingStatus string

const (
	FilingStatusPending FilingStatus = "pending"
	FilingStatusFiled   FilingStatus = "filed"
	FilingStatusPaid    FilingStatus = "paid"
)

// filingOrder ranks filing statuses; a status may only move forward.
var filingOrder = map[FilingStatus]int{
	FilingStatusPending: 0,
	FilingStatusFiled:   1,
	FilingStatusPaid:    2,
}

// CanTransitionTo reports whether a filing may move from s to next.
// Re-saving the current status is allowed so upserts stay idempotent.
func (s FilingStatus) CanTransitionTo(next FilingStatus) bool {
	from, ok := filingOrder[s]
	if !ok {
		return false
	}
	to, ok := filingOrder[next]
	if !ok {
		return false
	}
	return to >= from
}

// FilingStatuses lists the filing statuses in lifecycle order.
func FilingStatuses() []FilingStatus {
	return []FilingStatus{FilingStatusPending, FilingStatusFiled, FilingStatusPaid}
}

// WHTPaymentType classifies a payment subject to withholding tax.
type WHTPaymentType string

const (
	WHTDividend        WHTPaymentType = "dividend"
	WHTInterest        WHTPaymentType = "interest"
	WHTRoyalty         WHTPaymentType = "royalty"
	WHTRent            WHTPaymentType = "rent"
	WHTProfessionalFee WHTPaymentType = "professional_fee"
	WHTConsultancy     WHTPaymentType = "consultancy"
	WHTManagementFee   WHTPaymentType = "management_fee"
	WHTTechnicalFee    WHTPaymentType = "technical_fee"
	WHTCommission      WHTPaymentType = "commission"
	WHTConstruction    WHTPaymentType = "construction"
	WHTContractSupply  WHTPaymentType = "contract_supply"
	WHTDirectorFee     WHTPaymentType = "director_fee"
)

// RecipientType is the legal form of the party receiving a WHT-liable payment.
type RecipientType string

const (
	RecipientIndividual RecipientType = "individual"
	RecipientCompany    RecipientType = "company"
)

// TaxPaymentType identifies which tax a remittance settles.
type TaxPaymentType string

const (
	TaxPaymentPIT   TaxPaymentType = "pit"
	TaxPaymentCIT   TaxPaymentType = "cit"
	TaxPaymentVAT   TaxPaymentType = "vat"
	TaxPaymentWHT   TaxPaymentType = "wht"
	TaxPaymentOther TaxPaymentType = "other"
)

// TaxPaymentStatus tracks confirmation of remittance evidence.
type TaxPaymentStatus string

const (
	TaxPaymentPending   TaxPaymentStatus = "pending"
	TaxPaymentConfirmed TaxPaymentStatus = "confirmed"
	TaxPaymentRejected  TaxPaymentStatus = "rejected"
)
