package seeders

import "service-tracker/internal/entities"

// sampleServices - демонстрационные записи для пустого хранилища.
// Телефоны сохранены в исходном виде с пробелами. Цвет "blue" не входит в палитру
// и остается как есть: хранимые значения не проверяются.
var sampleServices = []entities.ServiceRecord{
	{
		ID:            "1",
		CustomerPhone: "0532 123 4567",
		Address:       "İstanbul, Beylikdüzü - Telefon ekran değişimi ve batarya tamir",
		Color:         "blue",
		Cost:          450,
		Expenses:      180,
		Status:        "completed",
		CreatedAt:     "2023-06-15T10:00:00Z",
		UpdatedAt:     "2023-06-15T14:30:00Z",
	},
	{
		ID:            "2",
		CustomerPhone: "0555 987 6543",
		Address:       "Ankara, Çankaya - Laptop fan temizliği ve termal macun yenileme",
		Color:         "green",
		Cost:          350,
		Expenses:      120,
		Status:        "ongoing",
		CreatedAt:     "2023-07-22T09:15:00Z",
		UpdatedAt:     "2023-07-22T16:45:00Z",
	},
	{
		ID:            "3",
		CustomerPhone: "0533 456 7890",
		Address:       "İzmir, Konak - Anakart tamiri, RAM yükseltme",
		Color:         "yellow",
		Cost:          780,
		Expenses:      320,
		Status:        "workshop",
		CreatedAt:     "2023-08-05T11:30:00Z",
		UpdatedAt:     "2023-08-05T17:20:00Z",
	},
	{
		ID:            "4",
		CustomerPhone: "0532 123 4567",
		Address:       "Bursa, Nilüfer - Yazılım güncellemesi, veri kurtarma",
		Color:         "red",
		Cost:          250,
		Expenses:      90,
		Status:        "completed",
		CreatedAt:     "2023-09-10T08:45:00Z",
		UpdatedAt:     "2023-09-10T15:10:00Z",
	},
}

var sampleMissingParts = []string{
	"iPhone 11 ekran",
	"Samsung A52 şarj soketi",
}
