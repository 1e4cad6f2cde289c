package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"service-tracker/internal/repositories"
	"service-tracker/pkg/config"
	"service-tracker/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение хранилища)     ")
	log.Println("======================================================")

	runSamples := flag.Bool("samples", false, "Записать демонстрационные сервисные записи")
	runClear := flag.Bool("clear", false, "Удалить все ключи приложения перед наполнением")
	force := flag.Bool("force", false, "Перезаписать существующие записи")

	flag.Parse()

	if !*runSamples && !*runClear {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  STORE_DRIVER=redis go run ./seeders/cmd/seed -samples")
		log.Println("  STORE_DRIVER=postgres go run ./seeders/cmd/seed -clear -samples")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	if cfg.Store.Driver == config.StoreMemory {
		log.Fatal("❌ STORE_DRIVER=memory: сидер не имеет смысла для хранилища в памяти")
	}
	log.Println("📦 Используется хранилище:", cfg.Store.Driver)

	ctx := context.Background()
	store, closeStore, err := repositories.OpenStore(ctx, cfg, zap.NewNop())
	if err != nil {
		log.Fatalf("❌ Не удалось открыть хранилище: %v", err)
	}
	defer closeStore()

	if *runClear {
		if err := seeders.ClearAll(ctx, store); err != nil {
			log.Fatalf("❌ Ошибка очистки: %v", err)
		}
	}
	if *runSamples {
		if err := seeders.SeedSampleServices(ctx, store, *force); err != nil {
			log.Fatalf("❌ Ошибка наполнения: %v", err)
		}
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
