package nodes

import (
	"errors"

	"xdao.co/suiobj/config"
	"xdao.co/suiobj/nodegrpc"
	"xdao.co/suiobj/rpc"
	"xdao.co/suiobj/suiobj"
)

func init() {
	MustRegister(Backend{
		Name:        "jsonrpc",
		Description: "Sui full node JSON-RPC (node_url)",
		Open: func(cfg config.Config) (suiobj.Node, func() error, error) {
			return rpc.New(cfg.NodeURL, rpc.Options{
				Timeout:   cfg.Timeout(),
				PageLimit: cfg.PageLimit,
			}), nil, nil
		},
	})

	MustRegister(Backend{
		Name:        "grpc",
		Description: "suiobj-proxyd NodeReader service (grpc_target)",
		Open: func(cfg config.Config) (suiobj.Node, func() error, error) {
			if cfg.GRPCTarget == "" {
				return nil, nil, errors.New("nodes: grpc backend requires grpc_target")
			}
			client, err := nodegrpc.Dial(cfg.GRPCTarget, nodegrpc.DialOptions{})
			if err != nil {
				return nil, nil, err
			}
			client.Timeout = cfg.Timeout()
			return client, client.Close, nil
		},
	})
}
