// Command calculate runs a single rebate calculation and reports whether it
// succeeded. By default it works against the store configured in the
// environment; with -addr it calls a running server over gRPC.
//
//	calculate [-addr host:port] [-catalog file] <product-id> <rebate-id> <volume>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/rebate-service/internal/app/rebate/catalog"
	"github.com/light-bringer/rebate-service/internal/app/rebate/usecases/calculate_rebate"
	"github.com/light-bringer/rebate-service/internal/config"
	"github.com/light-bringer/rebate-service/internal/pkg/logger"
	"github.com/light-bringer/rebate-service/internal/pkg/metrics"
	"github.com/light-bringer/rebate-service/internal/services"
	grpcrebate "github.com/light-bringer/rebate-service/internal/transport/grpc/rebate"
)

type request struct {
	ProductID string
	RebateID  string
	Volume    decimal.Decimal
}

func main() {
	addr := flag.String("addr", "", "gRPC address of a running rebate server (default: use the local store)")
	catalogFile := flag.String("catalog", "", "YAML catalog to seed into the local store first")
	timeout := flag.Duration("timeout", 10*time.Second, "request timeout")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <product-id> <rebate-id> <volume>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	req, err := parseArgs(flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	fmt.Printf("Processing request: product=%s rebate=%s volume=%s\n", req.ProductID, req.RebateID, req.Volume)

	var success bool
	if *addr != "" {
		success, err = calculateRemote(ctx, *addr, req)
	} else {
		success, err = calculateLocal(ctx, *catalogFile, req)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Calculation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Calculated successfully: %t\n", success)
}

func parseArgs(args []string) (request, error) {
	if len(args) != 3 {
		return request{}, fmt.Errorf("expected 3 arguments, got %d", len(args))
	}
	volume, err := decimal.NewFromString(args[2])
	if err != nil {
		return request{}, fmt.Errorf("invalid volume %q: %w", args[2], err)
	}
	return request{ProductID: args[0], RebateID: args[1], Volume: volume}, nil
}

func calculateLocal(ctx context.Context, catalogFile string, req request) (bool, error) {
	cfg, err := config.Load()
	if err != nil {
		return false, err
	}
	log, err := logger.New(cfg.LogLevel, "console")
	if err != nil {
		return false, err
	}

	opts, err := services.NewServiceOptions(ctx, cfg, log, metrics.NopRecorder{})
	if err != nil {
		return false, err
	}
	defer opts.Close()

	if catalogFile != "" {
		cat, err := catalog.Load(catalogFile)
		if err != nil {
			return false, err
		}
		if err := catalog.NewSeeder(opts.Catalog, log).Seed(ctx, cat); err != nil {
			return false, err
		}
	}

	result, err := opts.CalculateRebate.Execute(ctx, &calculate_rebate.Request{
		RebateIdentifier:  req.RebateID,
		ProductIdentifier: req.ProductID,
		Volume:            req.Volume,
	})
	if err != nil {
		return false, err
	}
	if result.Success {
		fmt.Printf("Rebate amount: %s\n", result.Amount)
	} else {
		fmt.Printf("Reason: %s\n", result.Reason)
	}
	return result.Success, nil
}

func calculateRemote(ctx context.Context, addr string, req request) (bool, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return false, fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	in, err := structpb.NewStruct(map[string]interface{}{
		"rebate_identifier":  req.RebateID,
		"product_identifier": req.ProductID,
		"volume":             req.Volume.String(),
	})
	if err != nil {
		return false, err
	}

	reply, err := grpcrebate.NewClient(conn).CalculateRebate(ctx, in)
	if err != nil {
		return false, err
	}

	success := reply.GetFields()["success"].GetBoolValue()
	if success {
		fmt.Printf("Rebate amount: %s\n", reply.GetFields()["amount"].GetStringValue())
	} else {
		fmt.Printf("Reason: %s\n", reply.GetFields()["reason"].GetStringValue())
	}
	return success, nil
}
