package entities

// ServiceRecord - одна сервисная запись клиента в каноническом виде.
// Legacy-поля (PhoneNumber, Description, FeeCollected, Date) хранятся рядом с каноническими,
// чтобы старые и новые версии данных читались одинаково.
type ServiceRecord struct {
	ID            string  `json:"id"`
	CustomerPhone string  `json:"customerPhone"`
	Address       string  `json:"address"`
	Color         string  `json:"color"`
	Cost          float64 `json:"cost"`
	Expenses      float64 `json:"expenses"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
	Order         *int    `json:"order,omitempty"`

	// legacy
	Date         string  `json:"date"`
	PhoneNumber  string  `json:"phoneNumber"`
	Description  string  `json:"description"`
	FeeCollected float64 `json:"feeCollected"`

	PartsChanged          string   `json:"partsChanged,omitempty"`
	MissingParts          string   `json:"missingParts,omitempty"`
	QuotedPrice           *float64 `json:"quotedPrice,omitempty"`
	PhoneNumberNote       string   `json:"phoneNumberNote"`
	RawCustomerPhoneInput string   `json:"rawCustomerPhoneInput,omitempty"`
}

// DisplayPhone возвращает телефон для отображения: customerPhone, иначе phoneNumber.
func (r ServiceRecord) DisplayPhone() string {
	if r.CustomerPhone != "" {
		return r.CustomerPhone
	}
	return r.PhoneNumber
}

func (r ServiceRecord) DisplayAddress() string {
	if r.Address != "" {
		return r.Address
	}
	return r.Description
}

// DisplayRevenue - cost, иначе feeCollected, иначе 0.
func (r ServiceRecord) DisplayRevenue() float64 {
	if r.Cost != 0 {
		return r.Cost
	}
	return r.FeeCollected
}

// SyncLegacy переписывает legacy-поля из канонических. Вызывается на каждой записи.
func (r *ServiceRecord) SyncLegacy() {
	r.PhoneNumber = r.CustomerPhone
	r.Description = r.Address
	r.FeeCollected = r.Cost
	if len(r.CreatedAt) >= 10 {
		r.Date = r.CreatedAt[:10]
	} else {
		r.Date = r.CreatedAt
	}
}

// ExportRecord - только канонические поля, формат файла резервной копии.
type ExportRecord struct {
	ID            string  `json:"id"`
	CustomerPhone string  `json:"customerPhone"`
	Address       string  `json:"address"`
	Color         string  `json:"color"`
	Cost          float64 `json:"cost"`
	Expenses      float64 `json:"expenses"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}
