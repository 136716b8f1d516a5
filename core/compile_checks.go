package core

import glog "github.com/goliatone/go-logger/glog"

var (
	_ EntityLister    = EntityListerFunc(nil)
	_ Signer          = SignerFunc(nil)
	_ MetricsRecorder = NopMetricsRecorder{}
	_ MetricsRecorder = (*MemoryMetricsRecorder)(nil)
	_ ConfigProvider  = (*CfgxConfigProvider)(nil)
	_ OptionsResolver = GoOptionsResolver{}
	_ RawConfigLoader = ChainRawConfigLoader(nil)
	_ RawConfigLoader = EnvConfigLoader{}
	_ RawConfigLoader = YAMLFileConfigLoader{}
	_ RawConfigLoader = StaticRawConfigLoader{}

	_ Logger         = glog.Nop()
	_ LoggerProvider = glog.ProviderFromLogger(glog.Nop())
)
